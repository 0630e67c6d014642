package service

import (
	"sync"
	"time"

	"github.com/TokenSwapper/swap-status-svc/internal/swap"
	"github.com/ethereum/go-ethereum/common"
)

// Snapshot is one committed categorization result for a viewer.
type Snapshot struct {
	Seq     uint64
	Buckets swap.Buckets
	At      time.Time
}

// SnapshotStore holds the latest committed buckets per viewer. Every
// categorization run takes a sequence number before it starts; a run that
// finishes after a newer run has already committed is discarded, so a slow
// stale response can never overwrite fresher data. Replacement is wholesale,
// there is no partial merge.
type SnapshotStore struct {
	mu       sync.Mutex
	seq      uint64
	byViewer map[common.Address]Snapshot
	advisory string
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		byViewer: make(map[common.Address]Snapshot),
	}
}

// NextSeq reserves a sequence number for a run about to start.
func (s *SnapshotStore) NextSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// Commit installs a run's buckets for a viewer. Returns false when a strictly
// newer run already committed for that viewer; the caller must then drop its
// result entirely.
func (s *SnapshotStore) Commit(viewer common.Address, seq uint64, buckets swap.Buckets) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.byViewer[viewer]; ok && prev.Seq >= seq {
		return false
	}

	s.byViewer[viewer] = Snapshot{Seq: seq, Buckets: buckets, At: time.Now()}
	s.advisory = ""
	return true
}

// Get returns the latest committed snapshot for a viewer.
func (s *SnapshotStore) Get(viewer common.Address) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.byViewer[viewer]
	return snap, ok
}

// Fail empties all buckets and records a user-facing advisory. Used when the
// event history itself could not be loaded; the next successful run replaces
// everything from scratch.
func (s *SnapshotStore) Fail(advisory string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	for viewer := range s.byViewer {
		s.byViewer[viewer] = Snapshot{Seq: s.seq, At: time.Now()}
	}
	s.advisory = advisory
}

// Advisory returns the current user-facing advisory message, empty when the
// last run succeeded.
func (s *SnapshotStore) Advisory() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advisory
}
