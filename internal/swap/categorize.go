package swap

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gitlab.com/distributed_lab/logan/v3"
)

// StatusSource yields fresh readiness flags for a swap. Implementations query
// the escrow contract with the exact persisted terms; results must not be
// cached.
type StatusSource interface {
	SwapStatus(ctx context.Context, id *big.Int, terms Terms) (StatusFlags, error)
}

// NameSource resolves a token contract address to a display label. It never
// fails: unresolvable addresses come back as a stable sentinel and the zero
// address as the canonical ETH label.
type NameSource interface {
	Name(ctx context.Context, token common.Address) string
}

// Categorizer partitions an event history into the lifecycle buckets for one
// viewer, attaching a fresh classification and display names to every
// surfaced swap. A failed status lookup degrades that one swap to Unknown;
// the rest of the batch is unaffected.
type Categorizer struct {
	statuses StatusSource
	names    NameSource
	log      *logan.Entry
}

func NewCategorizer(statuses StatusSource, names NameSource, log *logan.Entry) *Categorizer {
	return &Categorizer{
		statuses: statuses,
		names:    names,
		log:      log,
	}
}

// Categorize recomputes all buckets from the full event history. It is not
// incremental: each call stands alone and its result is meant to wholesale
// replace any previous snapshot.
func (c *Categorizer) Categorize(ctx context.Context, events []Event, viewer common.Address, now time.Time) Buckets {
	var initiated, completed, removed []Event
	for _, e := range events {
		switch e.Kind {
		case EventInitiated:
			if e.Terms == nil {
				c.log.WithField("swap_id", e.SwapID.String()).
					Warn("initiated event without terms, dropping it")
				continue
			}
			initiated = append(initiated, e)
		case EventCompleted:
			completed = append(completed, e)
		case EventRemoved:
			removed = append(removed, e)
		default:
			c.log.WithField("kind", uint8(e.Kind)).Warn("unknown event kind, dropping it")
		}
	}

	completedIDs := lastEventByID(completed)
	removedIDs := lastEventByID(removed)

	// The contract guarantees a swap is never both completed and removed, but
	// the client does not rely on that: if both events exist, the later one
	// in log order decides, and Removed wins an exact tie.
	for id, rm := range removedIDs {
		if cp, ok := completedIDs[id]; ok {
			if rm.before(cp) {
				delete(removedIDs, id)
			} else {
				delete(completedIDs, id)
			}
		}
	}

	termsByID := make(map[string]*Terms, len(initiated))
	for _, e := range initiated {
		termsByID[e.SwapID.String()] = e.Terms
	}

	var b Buckets
	for _, e := range initiated {
		id := e.SwapID.String()
		terms := *e.Terms
		_, isCompleted := completedIDs[id]
		_, isRemoved := removedIDs[id]

		if isCompleted {
			continue
		}
		if isRemoved {
			if terms.IsParty(viewer) {
				b.Removed = append(b.Removed, c.terminal(ctx, terms, DotRemoved, CauseRemoved))
			}
			continue
		}
		if terms.Expired(now) {
			// Kept aside for now: expired-but-unremoved swaps trail explicit
			// removals in the Removed bucket.
			continue
		}

		switch {
		case terms.Initiator == viewer:
			b.Initiated = append(b.Initiated, c.classify(ctx, terms, false))
		case !terms.Open() && terms.Acceptor == viewer:
			b.ToAccept = append(b.ToAccept, c.classify(ctx, terms, false))
		case terms.Open():
			b.Open = append(b.Open, c.classify(ctx, terms, true))
		}
	}

	for _, e := range completed {
		id := e.SwapID.String()
		if _, stillCompleted := completedIDs[id]; !stillCompleted {
			continue
		}
		terms := e.Terms
		if terms == nil {
			terms = termsByID[id]
		}
		if terms == nil {
			c.log.WithField("swap_id", id).Warn("completed event with no known terms, dropping it")
			continue
		}
		if terms.IsParty(viewer) {
			b.Completed = append(b.Completed, c.terminal(ctx, *terms, DotComplete, CauseNone))
		}
	}

	for _, e := range initiated {
		id := e.SwapID.String()
		_, isCompleted := completedIDs[id]
		_, isRemoved := removedIDs[id]
		if isCompleted || isRemoved {
			continue
		}
		terms := *e.Terms
		if terms.Expired(now) && terms.IsParty(viewer) {
			b.Removed = append(b.Removed, c.terminal(ctx, terms, DotRemoved, CauseExpired))
		}
	}

	return b
}

// classify attaches a fresh contract classification plus display names.
// initiatorOnly selects the reduced open-swap variant used for the Open
// bucket, where acceptor-side flags carry no meaning for the viewer.
func (c *Categorizer) classify(ctx context.Context, terms Terms, initiatorOnly bool) Classified {
	cs := Classified{Terms: terms}
	c.attachNames(ctx, &cs)

	flags, err := c.statuses.SwapStatus(ctx, terms.SwapID, terms)
	if err != nil {
		c.log.WithError(err).WithField("swap_id", terms.SwapID.String()).
			Warn("failed to get swap status, degrading to unknown")
		cs.Classification = Unclassified
		return cs
	}

	if initiatorOnly {
		cs.Classification = ClassifyInitiatorOnly(flags)
	} else {
		cs.Classification = Classify(terms, flags)
	}
	return cs
}

// terminal builds an entry for an already-settled swap. No status query is
// issued: the contract's flags are meaningless once a swap is completed or
// removed.
func (c *Categorizer) terminal(ctx context.Context, terms Terms, dot DotClass, cause RemovalCause) Classified {
	cs := Classified{
		Terms:          terms,
		Classification: Classification{Status: StatusUnknown, Reason: ReasonNone, Dot: dot},
		Cause:          cause,
	}
	c.attachNames(ctx, &cs)
	return cs
}

func (c *Categorizer) attachNames(ctx context.Context, cs *Classified) {
	cs.InitiatorTokenName = c.names.Name(ctx, cs.Terms.InitiatorERCContract)
	cs.AcceptorTokenName = c.names.Name(ctx, cs.Terms.AcceptorERCContract)
}

// lastEventByID keeps, per swap id, the latest event in log order.
func lastEventByID(events []Event) map[string]Event {
	m := make(map[string]Event, len(events))
	for _, e := range events {
		id := e.SwapID.String()
		if prev, ok := m[id]; ok && e.before(prev) {
			continue
		}
		m[id] = e
	}
	return m
}
