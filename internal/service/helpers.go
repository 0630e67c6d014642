package service

import (
	"context"
	"math/big"
	"net/url"
	"strconv"
	"time"

	"github.com/TokenSwapper/swap-status-svc/internal/service/requests"
	"github.com/TokenSwapper/swap-status-svc/internal/swap"
	"github.com/TokenSwapper/swap-status-svc/internal/token"
	"github.com/ethereum/go-ethereum/common"
	"gitlab.com/distributed_lab/logan/v3"
)

// publish pushes one committed snapshot to the collector. Delivery is
// best-effort: the snapshot is already committed locally and the next poll
// will push a fresh one anyway.
func (w *worker) publish(ctx context.Context, viewer common.Address, seq uint64, buckets swap.Buckets, now time.Time) {
	if w.collector.Disabled {
		return
	}

	body := requests.NewSnapshot(viewer.Hex(), seq, w.chainID, now.UTC().Format(time.RFC3339), w.snapshots.Advisory())
	body.Data.Attributes.Initiated = w.views(ctx, buckets.Initiated, viewer, now, true)
	body.Data.Attributes.ToAccept = w.views(ctx, buckets.ToAccept, viewer, now, true)
	body.Data.Attributes.Open = w.views(ctx, buckets.Open, viewer, now, true)
	body.Data.Attributes.Completed = w.views(ctx, buckets.Completed, viewer, now, false)
	body.Data.Attributes.Removed = w.views(ctx, buckets.Removed, viewer, now, false)

	u, _ := url.Parse(strconv.FormatInt(w.chainID, 10) + "/snapshots")
	if err := w.collector.Connector.PostJSON(u, body, ctx, nil); err != nil {
		w.log.WithError(err).WithFields(logan.F{"viewer": viewer.Hex(), "seq": seq}).
			Error("failed to push snapshot to collector")
	}
}

// publishAdvisory tells the collector the history could not be loaded this
// run: all buckets empty, advisory set. The next successful run replaces it.
func (w *worker) publishAdvisory(ctx context.Context) {
	if w.collector.Disabled {
		return
	}

	now := time.Now()
	u, _ := url.Parse(strconv.FormatInt(w.chainID, 10) + "/snapshots")
	for _, viewer := range w.viewers {
		snap, ok := w.snapshots.Get(viewer)
		if !ok {
			continue
		}
		body := requests.NewSnapshot(viewer.Hex(), snap.Seq, w.chainID, now.UTC().Format(time.RFC3339), w.snapshots.Advisory())
		if err := w.collector.Connector.PostJSON(u, body, ctx, nil); err != nil {
			w.log.WithError(err).WithField("viewer", viewer.Hex()).
				Error("failed to push advisory snapshot to collector")
		}
	}
}

func (w *worker) views(ctx context.Context, bucket []swap.Classified, viewer common.Address, now time.Time, actionable bool) []requests.SwapView {
	views := make([]requests.SwapView, 0, len(bucket))
	for _, cs := range bucket {
		views = append(views, w.view(ctx, cs, viewer, now, actionable))
	}
	return views
}

// view is the display-ready detail projection of one classified swap.
func (w *worker) view(ctx context.Context, cs swap.Classified, viewer common.Address, now time.Time, actionable bool) requests.SwapView {
	t := cs.Terms

	v := requests.SwapView{
		SwapID: t.SwapID.String(),
		Status: cs.Status.String(),
		Reason: string(cs.Reason),
		Dot:    string(cs.Dot),
		Cause:  cs.Cause.String(),

		Expiry:    time.Unix(t.ExpiryDate, 0).UTC().Format(time.RFC1123),
		Initiator: t.Initiator.Hex(),

		InitiatorToken: w.side(ctx, t.InitiatorTokenType, t.InitiatorERCContract, cs.InitiatorTokenName, t.InitiatorTokenID, t.InitiatorTokenQuantity, t.InitiatorETHPortion),
		AcceptorToken:  w.side(ctx, t.AcceptorTokenType, t.AcceptorERCContract, cs.AcceptorTokenName, t.AcceptorTokenID, t.AcceptorTokenQuantity, t.AcceptorETHPortion),
	}
	if !t.Open() {
		v.Acceptor = t.Acceptor.Hex()
	}

	if actionable {
		for _, a := range w.resolver.Resolve(cs, viewer, now) {
			v.Actions = append(v.Actions, requests.ActionView{
				Label:    a.Label,
				Target:   a.Target.Hex(),
				Disabled: a.Disabled,
			})
		}
	}

	return v
}

func (w *worker) side(ctx context.Context, tt swap.TokenType, contract common.Address, name string, tokenID, quantity, ethPortion *big.Int) requests.SideView {
	s := requests.SideView{
		TokenType:  tt.String(),
		Name:       name,
		ETHPortion: token.NormalizeETH(ethPortion),
	}
	if tt != swap.TypeNone {
		s.Contract = contract.Hex()
	}

	switch tt {
	case swap.TypeERC721:
		s.TokenID = bigString(tokenID)
	case swap.TypeERC1155:
		s.TokenID = bigString(tokenID)
		decimals, resolved := w.cache.Decimals(ctx, contract)
		s.Quantity = token.Normalize(tt, quantity, decimals, resolved)
	case swap.TypeERC20, swap.TypeERC777:
		decimals, resolved := w.cache.Decimals(ctx, contract)
		s.Quantity = token.Normalize(tt, quantity, decimals, resolved)
	}

	return s
}

func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
