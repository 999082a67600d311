package product

import (
	"context"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/minhtrifit/hubtech-interview-api/model"
	"github.com/minhtrifit/hubtech-interview-api/sqltx"
)

type IRepo interface {
	Transact(ctx context.Context, fn func(ctx context.Context) error) error
	Insert(ctx context.Context, product model.Product) error
	Update(ctx context.Context, product model.Product) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (model.Product, error)
	List(ctx context.Context, offset, limit int) ([]model.Product, error)
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

var insertProductQuery = `INSERT INTO products (id, name, price, description, created_at, updated_at)
VALUES (:id, :name, :price, :description, :created_at, :updated_at)`

func (r repo) Insert(ctx context.Context, product model.Product) error {
	_, err := sqlx.NamedExecContext(ctx, sqltx.Ext(ctx, r.db), insertProductQuery, product)
	return err
}

var updateProductQuery = "UPDATE products SET name = :name, price = :price, description = :description, updated_at = :updated_at WHERE id = :id"

func (r repo) Update(ctx context.Context, product model.Product) error {
	_, err := sqlx.NamedExecContext(ctx, sqltx.Ext(ctx, r.db), updateProductQuery, product)
	return err
}

var deleteProductQuery = "DELETE FROM products WHERE id = ?"

func (r repo) Delete(ctx context.Context, id string) error {
	_, err := sqltx.Ext(ctx, r.db).ExecContext(ctx, deleteProductQuery, id)
	return err
}

var getProductQuery = "SELECT * FROM products WHERE id = ?"

func (r repo) Get(ctx context.Context, id string) (model.Product, error) {
	var res model.Product
	err := sqlx.GetContext(ctx, sqltx.Ext(ctx, r.db), &res, getProductQuery, id)
	return res, err
}

var listProductsQuery = "SELECT * FROM products ORDER BY created_at DESC LIMIT ? OFFSET ?"

func (r repo) List(ctx context.Context, offset, limit int) ([]model.Product, error) {
	var res []model.Product
	err := sqlx.SelectContext(ctx, sqltx.Ext(ctx, r.db), &res, listProductsQuery, limit, offset)
	return res, err
}

var countProductsQuery = "SELECT count(*) FROM products"

func (r repo) Count(ctx context.Context) (int, error) {
	var res int
	err := sqlx.GetContext(ctx, sqltx.Ext(ctx, r.db), &res, countProductsQuery)
	return res, err
}
