package postgres

import (
	"github.com/Masterminds/squirrel"
	"github.com/TokenSwapper/swap-status-svc/internal/data"
	"github.com/fatih/structs"
	"gitlab.com/distributed_lab/kit/pgdb"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

const eventsTable = "swap_events"

type events struct {
	db       *pgdb.DB
	srcChain string
}

func NewEvents(db *pgdb.DB, chainName string) data.Events {
	return events{db: db, srcChain: chainName}
}

func (q events) Insert(event data.Event) error {
	fields := structs.Map(event)
	fields["src_chain"] = q.srcChain

	stmt := squirrel.Insert(eventsTable).SetMap(fields)
	err := q.db.Exec(stmt)
	return errors.Wrap(err, "failed to insert swap event")
}

func (q events) Exists(kind uint8, swapID string, blockNumber uint64, logIndex uint64) (bool, error) {
	var result struct {
		ID int64 `db:"id"`
	}
	stmt := squirrel.Select("id").From(eventsTable).Where(squirrel.Eq{
		"src_chain":    q.srcChain,
		"kind":         kind,
		"swap_id":      swapID,
		"block_number": blockNumber,
		"log_index":    logIndex,
	})

	err := q.db.Get(&result, stmt)
	if err == nil {
		return true, nil
	}
	if isNoRows(err) {
		return false, nil
	}
	return false, errors.Wrap(err, "failed to check swap event existence")
}

func (q events) SelectAll() ([]data.Event, error) {
	var result []data.Event
	stmt := squirrel.Select("*").From(eventsTable).
		Where(squirrel.Eq{"src_chain": q.srcChain}).
		OrderBy("block_number ASC", "tx_index ASC", "log_index ASC")

	if err := q.db.Select(&result, stmt); err != nil {
		return nil, errors.Wrap(err, "failed to select swap events")
	}
	return result, nil
}
