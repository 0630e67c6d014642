package service

import (
	"context"
	"math/big"

	"github.com/TokenSwapper/swap-status-svc/internal/data"
	"github.com/TokenSwapper/swap-status-svc/internal/gobind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

func (r *indexer) handleSwapInitiated(ctx context.Context, eventName string, log *types.Log) error {
	var event gobind.SwapperSwapInitiated

	err := r.swapperAbi.UnpackIntoInterface(&event, eventName, log.Data)
	if err != nil {
		return errors.Wrap(err, "failed to unpack event", logan.F{
			"event": eventName,
		})
	}
	event.SwapId = swapIDFromTopic(log.Topics[1])

	row := eventRow(data.EventKindInitiated, event.SwapId, &event.Swap, log)
	return r.insertOnce(row)
}

func (r *indexer) handleSwapComplete(ctx context.Context, eventName string, log *types.Log) error {
	var event gobind.SwapperSwapComplete

	err := r.swapperAbi.UnpackIntoInterface(&event, eventName, log.Data)
	if err != nil {
		return errors.Wrap(err, "failed to unpack event", logan.F{
			"event": eventName,
		})
	}
	event.SwapId = swapIDFromTopic(log.Topics[1])

	row := eventRow(data.EventKindCompleted, event.SwapId, &event.Swap, log)
	return r.insertOnce(row)
}

func (r *indexer) handleSwapRemoved(ctx context.Context, eventName string, log *types.Log) error {
	// SwapRemoved carries indexed fields only, there is nothing to unpack.
	id := swapIDFromTopic(log.Topics[1])

	row := eventRow(data.EventKindRemoved, id, nil, log)
	return r.insertOnce(row)
}

// insertOnce skips rows that were already persisted, so re-indexing an
// overlapping block range stays idempotent.
func (r *indexer) insertOnce(row data.Event) error {
	exists, err := r.events.Exists(row.Kind, row.SwapID, row.BlockNumber, row.LogIndex)
	if err != nil {
		return errors.Wrap(err, "failed to check if swap event exists")
	}
	if exists {
		return nil
	}

	if err = r.events.Insert(row); err != nil {
		return errors.Wrap(err, "failed to insert swap event")
	}

	r.log.WithFields(logan.F{"swap_id": row.SwapID, "kind": row.Kind}).
		Debug("indexed swap event")
	return nil
}

func swapIDFromTopic(topic common.Hash) *big.Int {
	return new(big.Int).SetBytes(topic.Bytes())
}
