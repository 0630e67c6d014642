package service

import (
	"math/big"

	"github.com/TokenSwapper/swap-status-svc/internal/data"
	"github.com/TokenSwapper/swap-status-svc/internal/gobind"
	"github.com/TokenSwapper/swap-status-svc/internal/swap"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

func tupleFromTerms(t swap.Terms) gobind.ISwapTokensSwap {
	return gobind.ISwapTokensSwap{
		SwapId:     t.SwapID,
		ExpiryDate: big.NewInt(t.ExpiryDate),

		Initiator:              t.Initiator,
		InitiatorTokenType:     uint8(t.InitiatorTokenType),
		InitiatorERCContract:   t.InitiatorERCContract,
		InitiatorTokenId:       t.InitiatorTokenID,
		InitiatorTokenQuantity: t.InitiatorTokenQuantity,
		InitiatorETHPortion:    t.InitiatorETHPortion,

		Acceptor:              t.Acceptor,
		AcceptorTokenType:     uint8(t.AcceptorTokenType),
		AcceptorERCContract:   t.AcceptorERCContract,
		AcceptorTokenId:       t.AcceptorTokenID,
		AcceptorTokenQuantity: t.AcceptorTokenQuantity,
		AcceptorETHPortion:    t.AcceptorETHPortion,
	}
}

// eventRow flattens a decoded log into its storage shape.
func eventRow(kind uint8, swapID *big.Int, tuple *gobind.ISwapTokensSwap, log *types.Log) data.Event {
	row := data.Event{
		Kind:        kind,
		SwapID:      swapID.String(),
		BlockNumber: log.BlockNumber,
		TxIndex:     uint64(log.TxIndex),
		LogIndex:    uint64(log.Index),
	}

	if tuple == nil {
		return row
	}

	row.HasTerms = true
	row.ExpiryDate = tuple.ExpiryDate.Int64()
	row.Initiator = tuple.Initiator.Hex()
	row.Acceptor = tuple.Acceptor.Hex()

	row.InitiatorTokenType = tuple.InitiatorTokenType
	row.InitiatorERCContract = tuple.InitiatorERCContract.Hex()
	row.InitiatorTokenID = tuple.InitiatorTokenId.String()
	row.InitiatorTokenQuantity = tuple.InitiatorTokenQuantity.String()
	row.InitiatorETHPortion = tuple.InitiatorETHPortion.String()

	row.AcceptorTokenType = tuple.AcceptorTokenType
	row.AcceptorERCContract = tuple.AcceptorERCContract.Hex()
	row.AcceptorTokenID = tuple.AcceptorTokenId.String()
	row.AcceptorTokenQuantity = tuple.AcceptorTokenQuantity.String()
	row.AcceptorETHPortion = tuple.AcceptorETHPortion.String()

	return row
}

// domainEvent rebuilds the classification input from a stored row. Malformed
// rows are rejected here so undefined-shaped data never reaches the decision
// core.
func domainEvent(row data.Event) (swap.Event, error) {
	id, ok := new(big.Int).SetString(row.SwapID, 10)
	if !ok {
		return swap.Event{}, errors.From(errors.New("malformed swap id"), logan.F{"swap_id": row.SwapID})
	}

	e := swap.Event{
		SwapID:      id,
		BlockNumber: row.BlockNumber,
		TxIndex:     uint(row.TxIndex),
		LogIndex:    uint(row.LogIndex),
	}

	switch row.Kind {
	case data.EventKindInitiated:
		e.Kind = swap.EventInitiated
	case data.EventKindCompleted:
		e.Kind = swap.EventCompleted
	case data.EventKindRemoved:
		e.Kind = swap.EventRemoved
	default:
		return swap.Event{}, errors.From(errors.New("unknown event kind"), logan.F{"kind": row.Kind})
	}

	if !row.HasTerms {
		return e, nil
	}

	terms := swap.Terms{
		SwapID:     id,
		ExpiryDate: row.ExpiryDate,

		Initiator:            common.HexToAddress(row.Initiator),
		InitiatorTokenType:   swap.TokenType(row.InitiatorTokenType),
		InitiatorERCContract: common.HexToAddress(row.InitiatorERCContract),

		Acceptor:            common.HexToAddress(row.Acceptor),
		AcceptorTokenType:   swap.TokenType(row.AcceptorTokenType),
		AcceptorERCContract: common.HexToAddress(row.AcceptorERCContract),
	}

	var err error
	if terms.InitiatorTokenID, err = bigColumn(row.InitiatorTokenID); err != nil {
		return swap.Event{}, err
	}
	if terms.InitiatorTokenQuantity, err = bigColumn(row.InitiatorTokenQuantity); err != nil {
		return swap.Event{}, err
	}
	if terms.InitiatorETHPortion, err = bigColumn(row.InitiatorETHPortion); err != nil {
		return swap.Event{}, err
	}
	if terms.AcceptorTokenID, err = bigColumn(row.AcceptorTokenID); err != nil {
		return swap.Event{}, err
	}
	if terms.AcceptorTokenQuantity, err = bigColumn(row.AcceptorTokenQuantity); err != nil {
		return swap.Event{}, err
	}
	if terms.AcceptorETHPortion, err = bigColumn(row.AcceptorETHPortion); err != nil {
		return swap.Event{}, err
	}

	e.Terms = &terms
	return e, nil
}

func bigColumn(s string) (*big.Int, error) {
	if s == "" {
		return big.NewInt(0), nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.From(errors.New("malformed integer column"), logan.F{"value": s})
	}
	return v, nil
}
