package service

import (
	"context"
	"time"

	"github.com/TokenSwapper/swap-status-svc/internal/config"
	"github.com/TokenSwapper/swap-status-svc/internal/data"
	"github.com/TokenSwapper/swap-status-svc/internal/swap"
	"github.com/TokenSwapper/swap-status-svc/internal/token"
	"github.com/ethereum/go-ethereum/common"
	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

const fetchFailedAdvisory = "Swap history is temporarily unavailable, retrying shortly."

// worker runs one full categorization pass per poll tick: load the whole
// event history, partition it per watched viewer, and commit + publish the
// resulting snapshots. A history load failure empties all buckets for that
// run; per-swap status or name failures degrade only their own swap inside
// the categorizer.
type worker struct {
	log         *logan.Entry
	events      data.Events
	categorizer *swap.Categorizer
	resolver    *swap.ActionResolver
	cache       *token.Cache
	snapshots   *SnapshotStore
	viewers     []common.Address
	collector   config.Collector
	chainID     int64
}

func (w *worker) run(ctx context.Context) error {
	rows, err := w.events.SelectAll()
	if err != nil {
		w.snapshots.Fail(fetchFailedAdvisory)
		w.publishAdvisory(ctx)
		return errors.Wrap(err, "failed to load swap event history")
	}

	events := make([]swap.Event, 0, len(rows))
	for _, row := range rows {
		e, err := domainEvent(row)
		if err != nil {
			w.log.WithError(err).WithField("row_id", row.ID).
				Warn("skipping malformed swap event row")
			continue
		}
		events = append(events, e)
	}

	now := time.Now()
	for _, viewer := range w.viewers {
		seq := w.snapshots.NextSeq()
		buckets := w.categorizer.Categorize(ctx, events, viewer, now)

		if !w.snapshots.Commit(viewer, seq, buckets) {
			w.log.WithFields(logan.F{"viewer": viewer.Hex(), "seq": seq}).
				Debug("discarding stale categorization run")
			continue
		}

		w.publish(ctx, viewer, seq, buckets, now)
	}

	return nil
}
