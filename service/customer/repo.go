package customer

import (
	"context"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/minhtrifit/hubtech-interview-api/model"
	"github.com/minhtrifit/hubtech-interview-api/sqltx"
)

type IRepo interface {
	Transact(ctx context.Context, fn func(ctx context.Context) error) error
	Insert(ctx context.Context, customer model.Customer) error
	Update(ctx context.Context, customer model.Customer) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (model.Customer, error)
	FindByEmailOrPhone(ctx context.Context, email, phone string) (model.Customer, error)
	List(ctx context.Context, offset, limit int) ([]model.Customer, error)
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

var insertCustomerQuery = `INSERT INTO customers (id, name, email, phone, created_at, updated_at)
VALUES (:id, :name, :email, :phone, :created_at, :updated_at)`

func (r repo) Insert(ctx context.Context, customer model.Customer) error {
	_, err := sqlx.NamedExecContext(ctx, sqltx.Ext(ctx, r.db), insertCustomerQuery, customer)
	return err
}

var updateCustomerQuery = "UPDATE customers SET name = :name, email = :email, phone = :phone, updated_at = :updated_at WHERE id = :id"

func (r repo) Update(ctx context.Context, customer model.Customer) error {
	_, err := sqlx.NamedExecContext(ctx, sqltx.Ext(ctx, r.db), updateCustomerQuery, customer)
	return err
}

var deleteCustomerQuery = "DELETE FROM customers WHERE id = ?"

func (r repo) Delete(ctx context.Context, id string) error {
	_, err := sqltx.Ext(ctx, r.db).ExecContext(ctx, deleteCustomerQuery, id)
	return err
}

var getCustomerQuery = "SELECT * FROM customers WHERE id = ?"

func (r repo) Get(ctx context.Context, id string) (model.Customer, error) {
	var res model.Customer
	err := sqlx.GetContext(ctx, sqltx.Ext(ctx, r.db), &res, getCustomerQuery, id)
	return res, err
}

var findCustomerByEmailOrPhoneQuery = "SELECT * FROM customers WHERE email = ? OR phone = ? LIMIT 1"

func (r repo) FindByEmailOrPhone(ctx context.Context, email, phone string) (model.Customer, error) {
	var res model.Customer
	err := sqlx.GetContext(ctx, sqltx.Ext(ctx, r.db), &res, findCustomerByEmailOrPhoneQuery, email, phone)
	return res, err
}

var listCustomersQuery = "SELECT * FROM customers ORDER BY created_at DESC LIMIT ? OFFSET ?"

func (r repo) List(ctx context.Context, offset, limit int) ([]model.Customer, error) {
	var res []model.Customer
	err := sqlx.SelectContext(ctx, sqltx.Ext(ctx, r.db), &res, listCustomersQuery, limit, offset)
	return res, err
}

var countCustomersQuery = "SELECT count(*) FROM customers"

func (r repo) Count(ctx context.Context) (int, error) {
	var res int
	err := sqlx.GetContext(ctx, sqltx.Ext(ctx, r.db), &res, countCustomersQuery)
	return res, err
}
