package order

import (
	"context"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/minhtrifit/hubtech-interview-api/model"
	"github.com/minhtrifit/hubtech-interview-api/sqltx"
)

type IRepo interface {
	Transact(ctx context.Context, fn func(ctx context.Context) error) error
	Insert(ctx context.Context, order model.Order) error
	Update(ctx context.Context, order model.Order) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (model.Order, error)
	List(ctx context.Context, offset, limit int) ([]model.Order, error)
	Count(ctx context.Context) (int, error)
	InsertItems(ctx context.Context, items []model.OrderItem) error
	DeleteItems(ctx context.Context, orderID string) error
	GetItems(ctx context.Context, orderID string) ([]model.OrderItem, error)
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

var insertOrderQuery = `INSERT INTO orders (id, supplier_id, customer_id, status_id, address, total_price, created_at, updated_at)
VALUES (:id, :supplier_id, :customer_id, :status_id, :address, :total_price, :created_at, :updated_at)`

func (r repo) Insert(ctx context.Context, order model.Order) error {
	_, err := sqlx.NamedExecContext(ctx, sqltx.Ext(ctx, r.db), insertOrderQuery, order)
	return err
}

var updateOrderQuery = `UPDATE orders SET supplier_id = :supplier_id, customer_id = :customer_id, status_id = :status_id,
address = :address, total_price = :total_price, updated_at = :updated_at WHERE id = :id`

func (r repo) Update(ctx context.Context, order model.Order) error {
	_, err := sqlx.NamedExecContext(ctx, sqltx.Ext(ctx, r.db), updateOrderQuery, order)
	return err
}

var deleteOrderQuery = "DELETE FROM orders WHERE id = ?"

func (r repo) Delete(ctx context.Context, id string) error {
	_, err := sqltx.Ext(ctx, r.db).ExecContext(ctx, deleteOrderQuery, id)
	return err
}

var getOrderQuery = "SELECT * FROM orders WHERE id = ?"

func (r repo) Get(ctx context.Context, id string) (model.Order, error) {
	var res model.Order
	err := sqlx.GetContext(ctx, sqltx.Ext(ctx, r.db), &res, getOrderQuery, id)
	return res, err
}

var listOrdersQuery = "SELECT * FROM orders ORDER BY created_at DESC LIMIT ? OFFSET ?"

func (r repo) List(ctx context.Context, offset, limit int) ([]model.Order, error) {
	var res []model.Order
	err := sqlx.SelectContext(ctx, sqltx.Ext(ctx, r.db), &res, listOrdersQuery, limit, offset)
	return res, err
}

var countOrdersQuery = "SELECT count(*) FROM orders"

func (r repo) Count(ctx context.Context) (int, error) {
	var res int
	err := sqlx.GetContext(ctx, sqltx.Ext(ctx, r.db), &res, countOrdersQuery)
	return res, err
}

var insertOrderItemsQuery = `INSERT INTO order_items (id, order_id, product_id, quantity, subtotal, created_at, updated_at)
VALUES (:id, :order_id, :product_id, :quantity, :subtotal, :created_at, :updated_at)`

func (r repo) InsertItems(ctx context.Context, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	_, err := sqlx.NamedExecContext(ctx, sqltx.Ext(ctx, r.db), insertOrderItemsQuery, items)
	return err
}

var deleteOrderItemsQuery = "DELETE FROM order_items WHERE order_id = ?"

func (r repo) DeleteItems(ctx context.Context, orderID string) error {
	_, err := sqltx.Ext(ctx, r.db).ExecContext(ctx, deleteOrderItemsQuery, orderID)
	return err
}

var getOrderItemsQuery = "SELECT * FROM order_items WHERE order_id = ?"

func (r repo) GetItems(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	var res []model.OrderItem
	err := sqlx.SelectContext(ctx, sqltx.Ext(ctx, r.db), &res, getOrderItemsQuery, orderID)
	return res, err
}
