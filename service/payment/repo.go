package payment

import (
	"context"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/minhtrifit/hubtech-interview-api/model"
	"github.com/minhtrifit/hubtech-interview-api/sqltx"
)

type IRepo interface {
	Transact(ctx context.Context, fn func(ctx context.Context) error) error
	Insert(ctx context.Context, payment model.Payment) error
	Update(ctx context.Context, payment model.Payment) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (model.Payment, error)
	GetByOrder(ctx context.Context, orderID string) (model.Payment, error)
	List(ctx context.Context, offset, limit int) ([]model.Payment, error)
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

var insertPaymentQuery = `INSERT INTO payments (id, order_id, method_id, amount, is_paid, created_at, updated_at)
VALUES (:id, :order_id, :method_id, :amount, :is_paid, :created_at, :updated_at)`

func (r repo) Insert(ctx context.Context, payment model.Payment) error {
	_, err := sqlx.NamedExecContext(ctx, sqltx.Ext(ctx, r.db), insertPaymentQuery, payment)
	return err
}

var updatePaymentQuery = `UPDATE payments SET order_id = :order_id, method_id = :method_id, amount = :amount,
is_paid = :is_paid, updated_at = :updated_at WHERE id = :id`

func (r repo) Update(ctx context.Context, payment model.Payment) error {
	_, err := sqlx.NamedExecContext(ctx, sqltx.Ext(ctx, r.db), updatePaymentQuery, payment)
	return err
}

var deletePaymentQuery = "DELETE FROM payments WHERE id = ?"

func (r repo) Delete(ctx context.Context, id string) error {
	_, err := sqltx.Ext(ctx, r.db).ExecContext(ctx, deletePaymentQuery, id)
	return err
}

var getPaymentQuery = "SELECT * FROM payments WHERE id = ?"

func (r repo) Get(ctx context.Context, id string) (model.Payment, error) {
	var res model.Payment
	err := sqlx.GetContext(ctx, sqltx.Ext(ctx, r.db), &res, getPaymentQuery, id)
	return res, err
}

var getPaymentByOrderQuery = "SELECT * FROM payments WHERE order_id = ?"

func (r repo) GetByOrder(ctx context.Context, orderID string) (model.Payment, error) {
	var res model.Payment
	err := sqlx.GetContext(ctx, sqltx.Ext(ctx, r.db), &res, getPaymentByOrderQuery, orderID)
	return res, err
}

var listPaymentsQuery = "SELECT * FROM payments ORDER BY created_at DESC LIMIT ? OFFSET ?"

func (r repo) List(ctx context.Context, offset, limit int) ([]model.Payment, error) {
	var res []model.Payment
	err := sqlx.SelectContext(ctx, sqltx.Ext(ctx, r.db), &res, listPaymentsQuery, limit, offset)
	return res, err
}

var countPaymentsQuery = "SELECT count(*) FROM payments"

func (r repo) Count(ctx context.Context) (int, error) {
	var res int
	err := sqlx.GetContext(ctx, sqltx.Ext(ctx, r.db), &res, countPaymentsQuery)
	return res, err
}
