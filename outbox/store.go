// Package outbox persists aggregate change events in the same transaction as
// the mutation that produced them, and relays pending rows to the broker.
package outbox

import (
	"context"
	"encoding/json"

	"github.com/jmoiron/sqlx"

	"github.com/minhtrifit/hubtech-interview-api/event"
	"github.com/minhtrifit/hubtech-interview-api/model"
	"github.com/minhtrifit/hubtech-interview-api/sqltx"
)

type IStore interface {
	Create(ctx context.Context, e event.AggregateChanged) error
	GetPending(ctx context.Context, limit int) ([]model.Outbox, error)
	MarkDone(ctx context.Context, ids []int64) error
}

func NewStore(db *sqlx.DB) IStore {
	return &store{db: db}
}

type store struct {
	db *sqlx.DB
}

var createOutboxQuery = "INSERT INTO outboxes(content) VALUES (:content)"

func (s store) Create(ctx context.Context, e event.AggregateChanged) error {
	content, err := json.Marshal(e)
	if err != nil {
		return err
	}

	_, err = sqlx.NamedExecContext(ctx, sqltx.Ext(ctx, s.db), createOutboxQuery, model.Outbox{Content: content})
	return err
}

var getPendingOutboxQuery = "SELECT * FROM outboxes WHERE status = ? LIMIT ?"

func (s store) GetPending(ctx context.Context, limit int) ([]model.Outbox, error) {
	var res []model.Outbox
	err := sqlx.SelectContext(ctx, sqltx.Ext(ctx, s.db), &res, getPendingOutboxQuery, model.OutboxPending, limit)
	return res, err
}

var markDoneOutboxesQuery = "UPDATE outboxes SET status = ? WHERE id IN (?)"

func (s store) MarkDone(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(markDoneOutboxesQuery, model.OutboxCompleted, ids)
	if err != nil {
		return err
	}

	_, err = sqltx.Ext(ctx, s.db).ExecContext(ctx, query, args...)
	return err
}
