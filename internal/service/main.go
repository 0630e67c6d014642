package service

import (
	"context"
	"time"

	"github.com/TokenSwapper/swap-status-svc/internal/config"
	"github.com/TokenSwapper/swap-status-svc/internal/data/postgres"
	"github.com/TokenSwapper/swap-status-svc/internal/gobind"
	"github.com/TokenSwapper/swap-status-svc/internal/swap"
	"github.com/TokenSwapper/swap-status-svc/internal/token"
	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"
	"gitlab.com/distributed_lab/running"
)

type service struct {
	log         *logan.Entry
	indexer     *indexer
	worker      *worker
	indexPeriod time.Duration
	pollPeriod  time.Duration
}

func (s *service) run() error {
	s.log.Info("Service started")
	ctx := context.Background()

	go running.WithBackOff(ctx, s.log, "indexer", s.indexer.run,
		s.indexPeriod, s.indexPeriod, time.Minute)

	running.WithBackOff(ctx, s.log, "categorizer", s.worker.run,
		s.pollPeriod, s.pollPeriod, time.Minute)

	return nil
}

func newService(cfg config.Config) *service {
	net := cfg.Network()

	block, err := postgres.NewLastBlock(cfg.DB(), net.ChainName)
	if err != nil {
		panic(errors.Wrap(err, "failed to instantiate last block DB API"))
	}
	events := postgres.NewEvents(cfg.DB(), net.ChainName)

	meta, err := gobind.NewMetadataCaller(net.EthClient)
	if err != nil {
		panic(errors.Wrap(err, "failed to create token metadata caller"))
	}
	cache := token.NewCache(meta, 0, cfg.Log())

	statuses := contractStatuses{swapper: net.Swapper, timeout: net.RequestTimeout}

	return &service{
		log:     cfg.Log(),
		indexer: newIndexer(cfg, events, block),
		worker: &worker{
			log:         cfg.Log(),
			events:      events,
			categorizer: swap.NewCategorizer(statuses, cache, cfg.Log()),
			resolver:    swap.NewActionResolver(net.ContractAddress, cfg.Log()),
			cache:       cache,
			snapshots:   NewSnapshotStore(),
			viewers:     cfg.Watchlist().Viewers,
			collector:   cfg.Collector(),
			chainID:     net.ChainID,
		},
		indexPeriod: net.IndexPeriod,
		pollPeriod:  net.PollPeriod,
	}
}

func Run(cfg config.Config) {
	if err := newService(cfg).run(); err != nil {
		panic(err)
	}
}
