package service

import (
	"context"
	"math/big"
	"time"

	"github.com/TokenSwapper/swap-status-svc/internal/config"
	"github.com/TokenSwapper/swap-status-svc/internal/data"
	"github.com/TokenSwapper/swap-status-svc/internal/gobind"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

// indexer pulls escrow lifecycle logs from the chain and persists them. Each
// run resumes from the last fully processed block and leaves the checkpoint
// at the newest block it covered.
type indexer struct {
	log       *logan.Entry
	swapper   *gobind.Swapper
	ethClient *ethclient.Client
	events    data.Events
	block     data.LastBlock

	blockRange     uint64
	requestTimeout time.Duration

	handlers        map[string]handler
	swapperAbi      abi.ABI
	contractAddress common.Address
}

type handler func(ctx context.Context, eventName string, log *types.Log) error

func newIndexer(c config.Config, events data.Events, block data.LastBlock) *indexer {
	net := c.Network()

	r := &indexer{
		log:             c.Log(),
		swapper:         net.Swapper,
		ethClient:       net.EthClient,
		events:          events,
		block:           block,
		blockRange:      net.BlockRange,
		requestTimeout:  net.RequestTimeout,
		swapperAbi:      net.Swapper.ABI(),
		contractAddress: net.ContractAddress,
	}

	r.handlers = map[string]handler{
		"SwapInitiated": r.handleSwapInitiated,
		"SwapComplete":  r.handleSwapComplete,
		"SwapRemoved":   r.handleSwapRemoved,
	}

	return r
}

func (r *indexer) run(ctx context.Context) error {
	last, err := r.block.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get last block")
	}

	currBlock, err := r.getNetworkLatestBlock(ctx, *last)
	if err != nil {
		return errors.Wrap(err, "failed to get the latest block from the network")
	}
	if currBlock == *last {
		return nil
	}

	if err = r.catchUp(ctx, *last+1, currBlock); err != nil {
		return errors.Wrap(err, "failed to catch up with the network")
	}

	err = r.block.Set(currBlock)
	return errors.Wrap(err, "failed to save last block")
}

func (r *indexer) getNetworkLatestBlock(ctx context.Context, last uint64) (uint64, error) {
	child, cancel := context.WithTimeout(ctx, r.requestTimeout)
	defer cancel()

	n, err := r.ethClient.BlockNumber(child)
	if err != nil {
		return n, errors.Wrap(err, "failed to get eth_blockNumber")
	}
	if n < last {
		return n, errors.Errorf("given saved_last_block=%d is greater than network_latest_block=%d", last, n)
	}

	return n, nil
}

func (r *indexer) filters() ethereum.FilterQuery {
	topics := make([]common.Hash, 0, len(r.handlers))
	for eventName := range r.handlers {
		event := r.swapperAbi.Events[eventName]

		topics = append(topics, event.ID)
	}

	return ethereum.FilterQuery{
		Addresses: []common.Address{
			r.contractAddress,
		},
		Topics: [][]common.Hash{
			topics,
		},
	}
}

func (r *indexer) catchUp(ctx context.Context, from, to uint64) error {
	if r.blockRange == 0 {
		return r.handleRange(ctx, from, to)
	}

	for start := from; start <= to; start += r.blockRange + 1 {
		end := start + r.blockRange
		if end > to {
			end = to
		}
		if err := r.handleRange(ctx, start, end); err != nil {
			return err
		}
	}

	return nil
}

func (r *indexer) handleRange(ctx context.Context, from, to uint64) error {
	child, cancel := context.WithTimeout(ctx, r.requestTimeout)
	defer cancel()

	filters := r.filters()
	filters.FromBlock = new(big.Int).SetUint64(from)
	filters.ToBlock = new(big.Int).SetUint64(to)

	logs, err := r.ethClient.FilterLogs(child, filters)
	if err != nil {
		return errors.Wrap(err, "failed to get filter logs")
	}

	for _, log := range logs {
		if err := r.handleEvent(ctx, log); err != nil {
			return errors.Wrap(err, "failed to handle event")
		}
	}

	return nil
}

func (r *indexer) handleEvent(ctx context.Context, log types.Log) error {
	topic := log.Topics[0] // First topic must be a hashed signature of the event

	event, err := r.swapperAbi.EventByID(topic)
	if err != nil {
		return errors.Wrap(err, "failed to get event by topic", logan.F{
			"topic": topic.Hex(),
		})
	}

	h, ok := r.handlers[event.Name]
	if !ok {
		return errors.From(errors.New("no handler for such event name"),
			logan.F{
				"event_name": event.Name,
			})
	}

	err = h(ctx, event.Name, &log)
	return errors.Wrap(err, "handling of event failed", logan.F{
		"topic":      topic.Hex(),
		"event_name": event.Name,
	})
}
