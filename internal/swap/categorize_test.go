package swap_test

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/TokenSwapper/swap-status-svc/internal/swap"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/distributed_lab/logan/v3"
)

type stubStatuses struct {
	flags swap.StatusFlags
	errs  map[string]error
	calls int
}

func (s *stubStatuses) SwapStatus(_ context.Context, id *big.Int, _ swap.Terms) (swap.StatusFlags, error) {
	s.calls++
	if err, ok := s.errs[id.String()]; ok {
		return swap.StatusFlags{}, err
	}
	return s.flags, nil
}

type stubNames struct{}

func (stubNames) Name(_ context.Context, token common.Address) string {
	if token == (common.Address{}) {
		return "ETH"
	}
	return "Token-" + token.Hex()[:8]
}

var testNow = time.Unix(1700000000, 0)

func newTestCategorizer(statuses *stubStatuses) *swap.Categorizer {
	return swap.NewCategorizer(statuses, stubNames{}, logan.New())
}

func initiatedEvent(id int64, terms swap.Terms, block uint64) swap.Event {
	terms.SwapID = big.NewInt(id)
	return swap.Event{
		Kind:        swap.EventInitiated,
		SwapID:      big.NewInt(id),
		Terms:       &terms,
		BlockNumber: block,
	}
}

func bareEvent(kind swap.EventKind, id int64, block uint64) swap.Event {
	return swap.Event{Kind: kind, SwapID: big.NewInt(id), BlockNumber: block}
}

func TestCategorizeSplitsByRole(t *testing.T) {
	statuses := &stubStatuses{flags: swap.StatusFlags{IsReadyForSwapping: true}}
	c := newTestCategorizer(statuses)

	mine := targetedTerms()                  // initiator = initiatorAddr
	forMe := targetedTerms()                 // swap targeted at the viewer
	forMe.Initiator = outsiderAddr
	forMe.Acceptor = initiatorAddr
	someoneElses := openTerms()              // open swap by a third party
	someoneElses.Initiator = outsiderAddr
	myOpen := openTerms()                    // viewer's own open swap

	events := []swap.Event{
		initiatedEvent(1, mine, 10),
		initiatedEvent(2, forMe, 11),
		initiatedEvent(3, someoneElses, 12),
		initiatedEvent(4, myOpen, 13),
	}

	b := c.Categorize(context.Background(), events, initiatorAddr, testNow)

	require.Len(t, b.Initiated, 2)
	assert.Equal(t, "1", b.Initiated[0].Terms.SwapID.String())
	assert.Equal(t, "4", b.Initiated[1].Terms.SwapID.String())
	require.Len(t, b.ToAccept, 1)
	assert.Equal(t, "2", b.ToAccept[0].Terms.SwapID.String())
	require.Len(t, b.Open, 1)
	assert.Equal(t, "3", b.Open[0].Terms.SwapID.String())
	assert.Empty(t, b.Completed)
	assert.Empty(t, b.Removed)

	// The viewer's own open swap must not appear in Open.
	for _, cs := range b.Open {
		assert.NotEqual(t, initiatorAddr, cs.Terms.Initiator)
	}
}

func TestCategorizeNoSwapInTwoLiveBuckets(t *testing.T) {
	statuses := &stubStatuses{flags: swap.StatusFlags{IsReadyForSwapping: true}}
	c := newTestCategorizer(statuses)

	events := []swap.Event{
		initiatedEvent(1, targetedTerms(), 10),
		initiatedEvent(2, openTerms(), 11),
	}

	b := c.Categorize(context.Background(), events, initiatorAddr, testNow)

	seen := map[string]int{}
	for _, bucket := range [][]swap.Classified{b.Initiated, b.ToAccept, b.Open} {
		for _, cs := range bucket {
			seen[cs.Terms.SwapID.String()]++
		}
	}
	for id, n := range seen {
		assert.Equalf(t, 1, n, "swap %s appeared in %d live buckets", id, n)
	}
}

func TestCategorizeRemovedBeatsExpiry(t *testing.T) {
	statuses := &stubStatuses{}
	c := newTestCategorizer(statuses)

	expired := targetedTerms()
	expired.ExpiryDate = testNow.Unix() - 100

	events := []swap.Event{
		initiatedEvent(1, expired, 10),
		bareEvent(swap.EventRemoved, 1, 20),
	}

	b := c.Categorize(context.Background(), events, initiatorAddr, testNow)

	assert.Empty(t, b.Initiated)
	assert.Empty(t, b.Completed)
	require.Len(t, b.Removed, 1)
	assert.Equal(t, swap.CauseRemoved, b.Removed[0].Cause)
	assert.Equal(t, swap.DotRemoved, b.Removed[0].Dot)
	assert.Zero(t, statuses.calls, "terminal swaps must not be status-queried")
}

func TestCategorizeExpiredOnlyForParties(t *testing.T) {
	statuses := &stubStatuses{}
	c := newTestCategorizer(statuses)

	expired := targetedTerms()
	expired.ExpiryDate = testNow.Unix()
	events := []swap.Event{initiatedEvent(1, expired, 10)}

	// A party sees the expired swap under Removed with the expiry cause.
	b := c.Categorize(context.Background(), events, acceptorAddr, testNow)
	assert.Empty(t, b.ToAccept)
	require.Len(t, b.Removed, 1)
	assert.Equal(t, swap.CauseExpired, b.Removed[0].Cause)

	// A stranger does not see it at all.
	b = c.Categorize(context.Background(), events, outsiderAddr, testNow)
	assert.Empty(t, b.Removed)
}

func TestCategorizeRemovedBeforeExpiredInBucket(t *testing.T) {
	statuses := &stubStatuses{}
	c := newTestCategorizer(statuses)

	expired := targetedTerms()
	expired.ExpiryDate = testNow.Unix() - 1
	removed := targetedTerms()

	events := []swap.Event{
		initiatedEvent(1, expired, 10), // expired first in event order
		initiatedEvent(2, removed, 11),
		bareEvent(swap.EventRemoved, 2, 12),
	}

	b := c.Categorize(context.Background(), events, initiatorAddr, testNow)

	require.Len(t, b.Removed, 2)
	assert.Equal(t, swap.CauseRemoved, b.Removed[0].Cause)
	assert.Equal(t, swap.CauseExpired, b.Removed[1].Cause)
}

func TestCategorizeCompleted(t *testing.T) {
	statuses := &stubStatuses{}
	c := newTestCategorizer(statuses)

	events := []swap.Event{
		initiatedEvent(1, targetedTerms(), 10),
		bareEvent(swap.EventCompleted, 1, 20),
	}

	for _, viewer := range []common.Address{initiatorAddr, acceptorAddr} {
		b := c.Categorize(context.Background(), events, viewer, testNow)
		assert.Empty(t, b.Initiated)
		assert.Empty(t, b.ToAccept)
		require.Len(t, b.Completed, 1)
		assert.Equal(t, swap.DotComplete, b.Completed[0].Dot)
	}

	b := c.Categorize(context.Background(), events, outsiderAddr, testNow)
	assert.Empty(t, b.Completed)
}

func TestCategorizeCompletedAndRemovedTieBreak(t *testing.T) {
	statuses := &stubStatuses{}
	c := newTestCategorizer(statuses)

	// Removed arrives later in log order, so it wins the bucket.
	events := []swap.Event{
		initiatedEvent(1, targetedTerms(), 10),
		bareEvent(swap.EventCompleted, 1, 20),
		bareEvent(swap.EventRemoved, 1, 21),
	}
	b := c.Categorize(context.Background(), events, initiatorAddr, testNow)
	assert.Empty(t, b.Completed)
	require.Len(t, b.Removed, 1)

	// And the other way around.
	events = []swap.Event{
		initiatedEvent(1, targetedTerms(), 10),
		bareEvent(swap.EventRemoved, 1, 20),
		bareEvent(swap.EventCompleted, 1, 21),
	}
	b = c.Categorize(context.Background(), events, initiatorAddr, testNow)
	require.Len(t, b.Completed, 1)
	assert.Empty(t, b.Removed)
}

func TestCategorizeStatusFailureDegradesSingleSwap(t *testing.T) {
	statuses := &stubStatuses{
		flags: swap.StatusFlags{IsReadyForSwapping: true},
		errs:  map[string]error{"1": context.DeadlineExceeded},
	}
	c := newTestCategorizer(statuses)

	other := targetedTerms()
	events := []swap.Event{
		initiatedEvent(1, targetedTerms(), 10),
		initiatedEvent(2, other, 11),
	}

	b := c.Categorize(context.Background(), events, initiatorAddr, testNow)

	require.Len(t, b.Initiated, 2)
	assert.Equal(t, swap.StatusUnknown, b.Initiated[0].Status)
	assert.Equal(t, swap.DotUnknown, b.Initiated[0].Dot)
	assert.Equal(t, swap.StatusReady, b.Initiated[1].Status)
}

func TestCategorizeOpenBucketUsesInitiatorOnlyVariant(t *testing.T) {
	// Acceptor-side flags raised on an open swap must not leak into the Open
	// bucket's classification.
	statuses := &stubStatuses{flags: swap.StatusFlags{
		AcceptorNeedsToOwnToken:       true,
		AcceptorTokenRequiresApproval: true,
	}}
	c := newTestCategorizer(statuses)

	open := openTerms()
	open.Initiator = outsiderAddr
	events := []swap.Event{initiatedEvent(1, open, 10)}

	b := c.Categorize(context.Background(), events, initiatorAddr, testNow)
	require.Len(t, b.Open, 1)
	assert.Equal(t, swap.StatusReady, b.Open[0].Status)
}

func TestCategorizeAttachesNames(t *testing.T) {
	statuses := &stubStatuses{flags: swap.StatusFlags{IsReadyForSwapping: true}}
	c := newTestCategorizer(statuses)

	terms := targetedTerms()
	terms.AcceptorTokenType = swap.TypeNone
	terms.AcceptorERCContract = common.Address{}
	events := []swap.Event{initiatedEvent(1, terms, 10)}

	b := c.Categorize(context.Background(), events, initiatorAddr, testNow)
	require.Len(t, b.Initiated, 1)
	assert.NotEmpty(t, b.Initiated[0].InitiatorTokenName)
	assert.Equal(t, "ETH", b.Initiated[0].AcceptorTokenName)
}
