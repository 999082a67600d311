package orderstatus

import (
	"context"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/minhtrifit/hubtech-interview-api/model"
	"github.com/minhtrifit/hubtech-interview-api/sqltx"
)

type IRepo interface {
	Transact(ctx context.Context, fn func(ctx context.Context) error) error
	Insert(ctx context.Context, status model.OrderStatus) error
	Update(ctx context.Context, status model.OrderStatus) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (model.OrderStatus, error)
	List(ctx context.Context, offset, limit int) ([]model.OrderStatus, error)
	Count(ctx context.Context) (int, error)
}

func NewRepo(db *sqlx.DB) IRepo {
	return &repo{
		db: db,
	}
}

type repo struct {
	db *sqlx.DB
}

func (r repo) Transact(ctx context.Context, fn func(ctx context.Context) error) error {
	return sqltx.Transact(ctx, r.db, fn)
}

var insertStatusQuery = `INSERT INTO order_statuses (id, name, code, created_at, updated_at)
VALUES (:id, :name, :code, :created_at, :updated_at)`

func (r repo) Insert(ctx context.Context, status model.OrderStatus) error {
	_, err := sqlx.NamedExecContext(ctx, sqltx.Ext(ctx, r.db), insertStatusQuery, status)
	return err
}

var updateStatusQuery = "UPDATE order_statuses SET name = :name, code = :code, updated_at = :updated_at WHERE id = :id"

func (r repo) Update(ctx context.Context, status model.OrderStatus) error {
	_, err := sqlx.NamedExecContext(ctx, sqltx.Ext(ctx, r.db), updateStatusQuery, status)
	return err
}

var deleteStatusQuery = "DELETE FROM order_statuses WHERE id = ?"

func (r repo) Delete(ctx context.Context, id string) error {
	_, err := sqltx.Ext(ctx, r.db).ExecContext(ctx, deleteStatusQuery, id)
	return err
}

var getStatusQuery = "SELECT * FROM order_statuses WHERE id = ?"

func (r repo) Get(ctx context.Context, id string) (model.OrderStatus, error) {
	var res model.OrderStatus
	err := sqlx.GetContext(ctx, sqltx.Ext(ctx, r.db), &res, getStatusQuery, id)
	return res, err
}

var listStatusesQuery = "SELECT * FROM order_statuses ORDER BY created_at DESC LIMIT ? OFFSET ?"

func (r repo) List(ctx context.Context, offset, limit int) ([]model.OrderStatus, error) {
	var res []model.OrderStatus
	err := sqlx.SelectContext(ctx, sqltx.Ext(ctx, r.db), &res, listStatusesQuery, limit, offset)
	return res, err
}

var countStatusesQuery = "SELECT count(*) FROM order_statuses"

func (r repo) Count(ctx context.Context) (int, error) {
	var res int
	err := sqlx.GetContext(ctx, sqltx.Ext(ctx, r.db), &res, countStatusesQuery)
	return res, err
}
