package swap_test

import (
	"testing"

	"github.com/TokenSwapper/swap-status-svc/internal/swap"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/distributed_lab/logan/v3"
)

func newTestResolver() *swap.ActionResolver {
	return swap.NewActionResolver(escrowAddr, logan.New())
}

func classified(terms swap.Terms, cls swap.Classification) swap.Classified {
	return swap.Classified{Terms: terms, Classification: cls}
}

func labels(actions []swap.Action) []string {
	out := make([]string, 0, len(actions))
	for _, a := range actions {
		out = append(out, a.Label)
	}
	return out
}

func TestResolveExpiredSwapHasNoActions(t *testing.T) {
	r := newTestResolver()

	terms := targetedTerms()
	terms.ExpiryDate = testNow.Unix()
	cs := classified(terms, swap.Classification{Status: swap.StatusReady, Reason: swap.ReasonWaitingForAcceptor, Dot: swap.DotReady})

	assert.Empty(t, r.Resolve(cs, acceptorAddr, testNow))
	assert.Empty(t, r.Resolve(cs, initiatorAddr, testNow))
}

func TestResolveUnknownStatusHasNoActions(t *testing.T) {
	r := newTestResolver()

	cs := classified(targetedTerms(), swap.Unclassified)
	for _, viewer := range []common.Address{initiatorAddr, acceptorAddr, outsiderAddr} {
		assert.Empty(t, r.Resolve(cs, viewer, testNow))
	}
}

func TestResolveTargetedAcceptorReady(t *testing.T) {
	r := newTestResolver()

	cs := classified(targetedTerms(), swap.Classification{
		Status: swap.StatusReady, Reason: swap.ReasonWaitingForAcceptor, Dot: swap.DotReady,
	})
	actions := r.Resolve(cs, acceptorAddr, testNow)

	require.Len(t, actions, 1)
	assert.Equal(t, swap.LabelCompleteSwap, actions[0].Label)
	assert.Equal(t, escrowAddr, actions[0].Target)
}

func TestResolveOpenInitiatorMustApprove(t *testing.T) {
	r := newTestResolver()

	cs := classified(openTerms(), swap.Classification{
		Status: swap.StatusNotReady, Reason: swap.ReasonInitiatorApproval, Dot: swap.DotNotReady,
	})
	actions := r.Resolve(cs, initiatorAddr, testNow)

	require.Len(t, actions, 1)
	assert.Equal(t, swap.LabelApproveToken, actions[0].Label)
	assert.Equal(t, initTokenAddr, actions[0].Target)
}

func TestResolveOpenInitiatorOtherwiseRemoves(t *testing.T) {
	r := newTestResolver()

	for _, cls := range []swap.Classification{
		{Status: swap.StatusNotReady, Reason: swap.ReasonInitiatorMustOwn, Dot: swap.DotNotReady},
		{Status: swap.StatusReady, Reason: swap.ReasonWaitingForAcceptor, Dot: swap.DotReady},
	} {
		actions := r.Resolve(classified(openTerms(), cls), initiatorAddr, testNow)
		require.Len(t, actions, 1)
		assert.Equal(t, swap.LabelRemoveSwap, actions[0].Label)
		assert.Equal(t, escrowAddr, actions[0].Target)
	}
}

func TestResolveOpenOutsider(t *testing.T) {
	r := newTestResolver()

	// Ownership failure on the initiator side: nothing an outsider can do.
	cs := classified(openTerms(), swap.Classification{
		Status: swap.StatusNotReady, Reason: swap.ReasonInitiatorMustOwn, Dot: swap.DotNotReady,
	})
	assert.Empty(t, r.Resolve(cs, outsiderAddr, testNow))

	// Not ready but recoverable: pre-approve only.
	cs = classified(openTerms(), swap.Classification{
		Status: swap.StatusNotReady, Reason: swap.ReasonInitiatorApproval, Dot: swap.DotNotReady,
	})
	actions := r.Resolve(cs, outsiderAddr, testNow)
	require.Len(t, actions, 1)
	assert.Equal(t, swap.LabelApproveToken, actions[0].Label)
	assert.Equal(t, accTokenAddr, actions[0].Target)

	// Ready: approve own side and complete.
	cs = classified(openTerms(), swap.Classification{
		Status: swap.StatusReady, Reason: swap.ReasonWaitingForAcceptor, Dot: swap.DotReady,
	})
	actions = r.Resolve(cs, outsiderAddr, testNow)
	require.Equal(t, []string{swap.LabelApproveToken, swap.LabelCompleteSwap}, labels(actions))
	assert.Equal(t, accTokenAddr, actions[0].Target)
	assert.Equal(t, escrowAddr, actions[1].Target)
}

func TestResolveTargetedOwnershipFailure(t *testing.T) {
	r := newTestResolver()

	for _, reason := range []swap.Reason{
		swap.ReasonInitiatorMustOwn, swap.ReasonAcceptorMustOwn, swap.ReasonBothMustOwn,
	} {
		cs := classified(targetedTerms(), swap.Classification{
			Status: swap.StatusNotReady, Reason: reason, Dot: swap.DotNotReady,
		})

		actions := r.Resolve(cs, initiatorAddr, testNow)
		require.Len(t, actions, 1)
		assert.Equal(t, swap.LabelRemoveSwap, actions[0].Label)

		assert.Empty(t, r.Resolve(cs, acceptorAddr, testNow))
	}
}

func TestResolveTargetedInitiator(t *testing.T) {
	r := newTestResolver()

	// Both parties must approve: fix own side, keep the exit open.
	cs := classified(targetedTerms(), swap.Classification{
		Status: swap.StatusNotReady, Reason: swap.ReasonBothMustApprove, Dot: swap.DotNotReady,
	})
	actions := r.Resolve(cs, initiatorAddr, testNow)
	require.Equal(t, []string{swap.LabelApproveToken, swap.LabelRemoveSwap}, labels(actions))
	assert.Equal(t, initTokenAddr, actions[0].Target)

	// Own approval pending.
	cs = classified(targetedTerms(), swap.Classification{
		Status: swap.StatusPartiallyReady, Reason: swap.ReasonInitiatorApproval, Dot: swap.DotPartial,
	})
	actions = r.Resolve(cs, initiatorAddr, testNow)
	require.Equal(t, []string{swap.LabelApproveToken, swap.LabelRemoveSwap}, labels(actions))

	// Waiting on the acceptor: cancel is the only move.
	for _, cls := range []swap.Classification{
		{Status: swap.StatusPartiallyReady, Reason: swap.ReasonAcceptorApproval, Dot: swap.DotPartial},
		{Status: swap.StatusReady, Reason: swap.ReasonWaitingForAcceptor, Dot: swap.DotReady},
	} {
		actions = r.Resolve(classified(targetedTerms(), cls), initiatorAddr, testNow)
		require.Equal(t, []string{swap.LabelRemoveSwap}, labels(actions))
	}
}

func TestResolveTargetedAcceptorApprovals(t *testing.T) {
	r := newTestResolver()

	// Acceptor may pre-approve the initiator's token in anticipation.
	cs := classified(targetedTerms(), swap.Classification{
		Status: swap.StatusPartiallyReady, Reason: swap.ReasonInitiatorApproval, Dot: swap.DotPartial,
	})
	actions := r.Resolve(cs, acceptorAddr, testNow)
	require.Len(t, actions, 1)
	assert.Equal(t, swap.LabelApproveToken, actions[0].Label)
	assert.Equal(t, initTokenAddr, actions[0].Target)

	// Own approval pending.
	cs = classified(targetedTerms(), swap.Classification{
		Status: swap.StatusPartiallyReady, Reason: swap.ReasonAcceptorApproval, Dot: swap.DotPartial,
	})
	actions = r.Resolve(cs, acceptorAddr, testNow)
	require.Len(t, actions, 1)
	assert.Equal(t, accTokenAddr, actions[0].Target)

	// Both pending: the acceptor fixes their own side.
	cs = classified(targetedTerms(), swap.Classification{
		Status: swap.StatusNotReady, Reason: swap.ReasonBothMustApprove, Dot: swap.DotNotReady,
	})
	actions = r.Resolve(cs, acceptorAddr, testNow)
	require.Len(t, actions, 1)
	assert.Equal(t, accTokenAddr, actions[0].Target)
}

func TestResolveBystanderGetsNothing(t *testing.T) {
	r := newTestResolver()

	cs := classified(targetedTerms(), swap.Classification{
		Status: swap.StatusReady, Reason: swap.ReasonWaitingForAcceptor, Dot: swap.DotReady,
	})
	assert.Empty(t, r.Resolve(cs, outsiderAddr, testNow))
}
