package inventory

import (
	"context"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/minhtrifit/hubtech-interview-api/model"
	"github.com/minhtrifit/hubtech-interview-api/sqltx"
)

type IRepo interface {
	Transact(ctx context.Context, fn func(ctx context.Context) error) error
	Insert(ctx context.Context, inventory model.Inventory) error
	Update(ctx context.Context, inventory model.Inventory) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (model.Inventory, error)
	List(ctx context.Context, offset, limit int) ([]model.Inventory, error)
	ListBySupplier(ctx context.Context, supplierID string, offset, limit int) ([]model.Inventory, error)
	Count(ctx context.Context) (int, error)
	InsertItems(ctx context.Context, items []model.InventoryItem) error
	DeleteItems(ctx context.Context, inventoryID string) error
	GetItems(ctx context.Context, inventoryID string) ([]model.InventoryItem, error)
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

var insertInventoryQuery = `INSERT INTO inventories (id, supplier_id, location, created_at, updated_at)
VALUES (:id, :supplier_id, :location, :created_at, :updated_at)`

func (r repo) Insert(ctx context.Context, inventory model.Inventory) error {
	_, err := sqlx.NamedExecContext(ctx, sqltx.Ext(ctx, r.db), insertInventoryQuery, inventory)
	return err
}

var updateInventoryQuery = `UPDATE inventories SET supplier_id = :supplier_id, location = :location,
updated_at = :updated_at WHERE id = :id`

func (r repo) Update(ctx context.Context, inventory model.Inventory) error {
	_, err := sqlx.NamedExecContext(ctx, sqltx.Ext(ctx, r.db), updateInventoryQuery, inventory)
	return err
}

var deleteInventoryQuery = "DELETE FROM inventories WHERE id = ?"

func (r repo) Delete(ctx context.Context, id string) error {
	_, err := sqltx.Ext(ctx, r.db).ExecContext(ctx, deleteInventoryQuery, id)
	return err
}

var getInventoryQuery = "SELECT * FROM inventories WHERE id = ?"

func (r repo) Get(ctx context.Context, id string) (model.Inventory, error) {
	var res model.Inventory
	err := sqlx.GetContext(ctx, sqltx.Ext(ctx, r.db), &res, getInventoryQuery, id)
	return res, err
}

var listInventoriesQuery = "SELECT * FROM inventories ORDER BY created_at DESC LIMIT ? OFFSET ?"

func (r repo) List(ctx context.Context, offset, limit int) ([]model.Inventory, error) {
	var res []model.Inventory
	err := sqlx.SelectContext(ctx, sqltx.Ext(ctx, r.db), &res, listInventoriesQuery, limit, offset)
	return res, err
}

var listInventoriesBySupplierQuery = "SELECT * FROM inventories WHERE supplier_id = ? ORDER BY created_at DESC LIMIT ? OFFSET ?"

func (r repo) ListBySupplier(ctx context.Context, supplierID string, offset, limit int) ([]model.Inventory, error) {
	var res []model.Inventory
	err := sqlx.SelectContext(ctx, sqltx.Ext(ctx, r.db), &res, listInventoriesBySupplierQuery, supplierID, limit, offset)
	return res, err
}

var countInventoriesQuery = "SELECT count(*) FROM inventories"

func (r repo) Count(ctx context.Context) (int, error) {
	var res int
	err := sqlx.GetContext(ctx, sqltx.Ext(ctx, r.db), &res, countInventoriesQuery)
	return res, err
}

var insertInventoryItemsQuery = `INSERT INTO inventory_items (id, inventory_id, product_id, quantity, created_at, updated_at)
VALUES (:id, :inventory_id, :product_id, :quantity, :created_at, :updated_at)`

func (r repo) InsertItems(ctx context.Context, items []model.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}

	_, err := sqlx.NamedExecContext(ctx, sqltx.Ext(ctx, r.db), insertInventoryItemsQuery, items)
	return err
}

var deleteInventoryItemsQuery = "DELETE FROM inventory_items WHERE inventory_id = ?"

func (r repo) DeleteItems(ctx context.Context, inventoryID string) error {
	_, err := sqltx.Ext(ctx, r.db).ExecContext(ctx, deleteInventoryItemsQuery, inventoryID)
	return err
}

var getInventoryItemsQuery = "SELECT * FROM inventory_items WHERE inventory_id = ?"

func (r repo) GetItems(ctx context.Context, inventoryID string) ([]model.InventoryItem, error) {
	var res []model.InventoryItem
	err := sqlx.SelectContext(ctx, sqltx.Ext(ctx, r.db), &res, getInventoryItemsQuery, inventoryID)
	return res, err
}
