package service

import (
	"context"
	"math/big"
	"time"

	"github.com/TokenSwapper/swap-status-svc/internal/gobind"
	"github.com/TokenSwapper/swap-status-svc/internal/swap"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

// contractStatuses adapts the escrow binding to the categorizer's
// StatusSource. Every call is freshly issued with a bounded timeout; results
// are never cached because the flags are only valid at query time.
type contractStatuses struct {
	swapper *gobind.Swapper
	timeout time.Duration
}

func (c contractStatuses) SwapStatus(ctx context.Context, id *big.Int, terms swap.Terms) (swap.StatusFlags, error) {
	child, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	st, err := c.swapper.GetSwapStatus(&bind.CallOpts{Context: child}, id, tupleFromTerms(terms))
	if err != nil {
		return swap.StatusFlags{}, errors.Wrap(err, "failed to get swap status from contract")
	}

	return swap.StatusFlags{
		InitiatorNeedsToOwnToken:       st.InitiatorNeedsToOwnToken,
		AcceptorNeedsToOwnToken:        st.AcceptorNeedsToOwnToken,
		InitiatorTokenRequiresApproval: st.InitiatorTokenRequiresApproval,
		AcceptorTokenRequiresApproval:  st.AcceptorTokenRequiresApproval,
		IsReadyForSwapping:             st.IsReadyForSwapping,
	}, nil
}
