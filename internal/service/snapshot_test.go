package service

import (
	"testing"

	"github.com/TokenSwapper/swap-status-svc/internal/swap"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var viewerA = common.HexToAddress("0x1111111111111111111111111111111111111111")

func TestSnapshotStoreCommitAndGet(t *testing.T) {
	s := NewSnapshotStore()

	_, ok := s.Get(viewerA)
	assert.False(t, ok)

	seq := s.NextSeq()
	require.True(t, s.Commit(viewerA, seq, swap.Buckets{}))

	snap, ok := s.Get(viewerA)
	require.True(t, ok)
	assert.Equal(t, seq, snap.Seq)
}

func TestSnapshotStoreDiscardsStaleRun(t *testing.T) {
	s := NewSnapshotStore()

	older := s.NextSeq()
	newer := s.NextSeq()

	// The newer run finishes first and commits.
	require.True(t, s.Commit(viewerA, newer, swap.Buckets{}))

	// The slower, older run must be dropped wholesale.
	assert.False(t, s.Commit(viewerA, older, swap.Buckets{}))

	snap, _ := s.Get(viewerA)
	assert.Equal(t, newer, snap.Seq)
}

func TestSnapshotStoreFailEmptiesBuckets(t *testing.T) {
	s := NewSnapshotStore()

	seq := s.NextSeq()
	require.True(t, s.Commit(viewerA, seq, swap.Buckets{
		Initiated: []swap.Classified{{}},
	}))

	s.Fail("history unavailable")

	snap, ok := s.Get(viewerA)
	require.True(t, ok)
	assert.Empty(t, snap.Buckets.Initiated)
	assert.Equal(t, "history unavailable", s.Advisory())

	// A later successful run clears the advisory.
	require.True(t, s.Commit(viewerA, s.NextSeq(), swap.Buckets{}))
	assert.Empty(t, s.Advisory())
}