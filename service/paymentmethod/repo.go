package paymentmethod

import (
	"context"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/minhtrifit/hubtech-interview-api/model"
	"github.com/minhtrifit/hubtech-interview-api/sqltx"
)

type IRepo interface {
	Transact(ctx context.Context, fn func(ctx context.Context) error) error
	Insert(ctx context.Context, method model.PaymentMethod) error
	Update(ctx context.Context, method model.PaymentMethod) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (model.PaymentMethod, error)
	List(ctx context.Context, offset, limit int) ([]model.PaymentMethod, error)
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

var insertMethodQuery = `INSERT INTO payment_methods (id, name, description, created_at, updated_at)
VALUES (:id, :name, :description, :created_at, :updated_at)`

func (r repo) Insert(ctx context.Context, method model.PaymentMethod) error {
	_, err := sqlx.NamedExecContext(ctx, sqltx.Ext(ctx, r.db), insertMethodQuery, method)
	return err
}

var updateMethodQuery = "UPDATE payment_methods SET name = :name, description = :description, updated_at = :updated_at WHERE id = :id"

func (r repo) Update(ctx context.Context, method model.PaymentMethod) error {
	_, err := sqlx.NamedExecContext(ctx, sqltx.Ext(ctx, r.db), updateMethodQuery, method)
	return err
}

var deleteMethodQuery = "DELETE FROM payment_methods WHERE id = ?"

func (r repo) Delete(ctx context.Context, id string) error {
	_, err := sqltx.Ext(ctx, r.db).ExecContext(ctx, deleteMethodQuery, id)
	return err
}

var getMethodQuery = "SELECT * FROM payment_methods WHERE id = ?"

func (r repo) Get(ctx context.Context, id string) (model.PaymentMethod, error) {
	var res model.PaymentMethod
	err := sqlx.GetContext(ctx, sqltx.Ext(ctx, r.db), &res, getMethodQuery, id)
	return res, err
}

var listMethodsQuery = "SELECT * FROM payment_methods ORDER BY created_at DESC LIMIT ? OFFSET ?"

func (r repo) List(ctx context.Context, offset, limit int) ([]model.PaymentMethod, error) {
	var res []model.PaymentMethod
	err := sqlx.SelectContext(ctx, sqltx.Ext(ctx, r.db), &res, listMethodsQuery, limit, offset)
	return res, err
}

var countMethodsQuery = "SELECT count(*) FROM payment_methods"

func (r repo) Count(ctx context.Context) (int, error) {
	var res int
	err := sqlx.GetContext(ctx, sqltx.Ext(ctx, r.db), &res, countMethodsQuery)
	return res, err
}
