package supplier

import (
	"context"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/minhtrifit/hubtech-interview-api/model"
	"github.com/minhtrifit/hubtech-interview-api/sqltx"
)

type IRepo interface {
	Transact(ctx context.Context, fn func(ctx context.Context) error) error
	Insert(ctx context.Context, supplier model.Supplier) error
	Update(ctx context.Context, supplier model.Supplier) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (model.Supplier, error)
	FindByEmailOrPhone(ctx context.Context, email, phone string) (model.Supplier, error)
	List(ctx context.Context, offset, limit int) ([]model.Supplier, error)
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

var insertSupplierQuery = `INSERT INTO suppliers (id, name, email, phone, created_at, updated_at)
VALUES (:id, :name, :email, :phone, :created_at, :updated_at)`

func (r repo) Insert(ctx context.Context, supplier model.Supplier) error {
	_, err := sqlx.NamedExecContext(ctx, sqltx.Ext(ctx, r.db), insertSupplierQuery, supplier)
	return err
}

var updateSupplierQuery = "UPDATE suppliers SET name = :name, email = :email, phone = :phone, updated_at = :updated_at WHERE id = :id"

func (r repo) Update(ctx context.Context, supplier model.Supplier) error {
	_, err := sqlx.NamedExecContext(ctx, sqltx.Ext(ctx, r.db), updateSupplierQuery, supplier)
	return err
}

var deleteSupplierQuery = "DELETE FROM suppliers WHERE id = ?"

func (r repo) Delete(ctx context.Context, id string) error {
	_, err := sqltx.Ext(ctx, r.db).ExecContext(ctx, deleteSupplierQuery, id)
	return err
}

var getSupplierQuery = "SELECT * FROM suppliers WHERE id = ?"

func (r repo) Get(ctx context.Context, id string) (model.Supplier, error) {
	var res model.Supplier
	err := sqlx.GetContext(ctx, sqltx.Ext(ctx, r.db), &res, getSupplierQuery, id)
	return res, err
}

var findSupplierByEmailOrPhoneQuery = "SELECT * FROM suppliers WHERE email = ? OR phone = ? LIMIT 1"

func (r repo) FindByEmailOrPhone(ctx context.Context, email, phone string) (model.Supplier, error) {
	var res model.Supplier
	err := sqlx.GetContext(ctx, sqltx.Ext(ctx, r.db), &res, findSupplierByEmailOrPhoneQuery, email, phone)
	return res, err
}

var listSuppliersQuery = "SELECT * FROM suppliers ORDER BY created_at DESC LIMIT ? OFFSET ?"

func (r repo) List(ctx context.Context, offset, limit int) ([]model.Supplier, error) {
	var res []model.Supplier
	err := sqlx.SelectContext(ctx, sqltx.Ext(ctx, r.db), &res, listSuppliersQuery, limit, offset)
	return res, err
}

var countSuppliersQuery = "SELECT count(*) FROM suppliers"

func (r repo) Count(ctx context.Context) (int, error) {
	var res int
	err := sqlx.GetContext(ctx, sqltx.Ext(ctx, r.db), &res, countSuppliersQuery)
	return res, err
}
