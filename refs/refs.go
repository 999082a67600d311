// Package refs resolves foreign-key references ahead of every aggregate
// write. Each lookup fails with a NotFound naming the missing entity, and
// callers abort the whole operation on the first failure.
package refs

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/minhtrifit/hubtech-interview-api/apperr"
	"github.com/minhtrifit/hubtech-interview-api/model"
	"github.com/minhtrifit/hubtech-interview-api/sqltx"
)

type Resolver struct {
	db *sqlx.DB
}

func NewResolver(db *sqlx.DB) *Resolver {
	return &Resolver{db: db}
}

var (
	getSupplierQuery      = "SELECT * FROM suppliers WHERE id = ?"
	getCustomerQuery      = "SELECT * FROM customers WHERE id = ?"
	getProductQuery       = "SELECT * FROM products WHERE id = ?"
	getOrderStatusQuery   = "SELECT * FROM order_statuses WHERE id = ?"
	getPaymentMethodQuery = "SELECT * FROM payment_methods WHERE id = ?"
	getOrderQuery         = "SELECT * FROM orders WHERE id = ?"
	getProductBatchQuery  = "SELECT * FROM products WHERE id IN (?)"
)

func (r *Resolver) Supplier(ctx context.Context, id string) (model.Supplier, error) {
	var res model.Supplier
	err := sqlx.GetContext(ctx, sqltx.Ext(ctx, r.db), &res, getSupplierQuery, id)
	return res, apperr.MaskNoRows(err, "Supplier not found")
}

func (r *Resolver) Customer(ctx context.Context, id string) (model.Customer, error) {
	var res model.Customer
	err := sqlx.GetContext(ctx, sqltx.Ext(ctx, r.db), &res, getCustomerQuery, id)
	return res, apperr.MaskNoRows(err, "Customer not found")
}

func (r *Resolver) Product(ctx context.Context, id string) (model.Product, error) {
	var res model.Product
	err := sqlx.GetContext(ctx, sqltx.Ext(ctx, r.db), &res, getProductQuery, id)
	return res, apperr.MaskNoRows(err, "Product not found")
}

func (r *Resolver) OrderStatus(ctx context.Context, id string) (model.OrderStatus, error) {
	var res model.OrderStatus
	err := sqlx.GetContext(ctx, sqltx.Ext(ctx, r.db), &res, getOrderStatusQuery, id)
	return res, apperr.MaskNoRows(err, "Order status not found")
}

func (r *Resolver) PaymentMethod(ctx context.Context, id string) (model.PaymentMethod, error) {
	var res model.PaymentMethod
	err := sqlx.GetContext(ctx, sqltx.Ext(ctx, r.db), &res, getPaymentMethodQuery, id)
	return res, apperr.MaskNoRows(err, "Payment method not found")
}

func (r *Resolver) Order(ctx context.Context, id string) (model.Order, error) {
	var res model.Order
	err := sqlx.GetContext(ctx, sqltx.Ext(ctx, r.db), &res, getOrderQuery, id)
	return res, apperr.MaskNoRows(err, "Order not found")
}

// ProductBatch resolves an entire batch of product ids before any caller
// write. When any id fails to resolve the whole batch is rejected: the number
// of resolved rows must equal the number of requested ids.
func (r *Resolver) ProductBatch(ctx context.Context, ids []string) (map[string]model.Product, error) {
	if len(ids) == 0 {
		return map[string]model.Product{}, nil
	}

	query, args, err := sqlx.In(getProductBatchQuery, ids)
	if err != nil {
		return nil, err
	}

	var rows []model.Product
	err = sqlx.SelectContext(ctx, sqltx.Ext(ctx, r.db), &rows, query, args...)
	if err != nil {
		return nil, err
	}

	products := make(map[string]model.Product, len(rows))
	for _, p := range rows {
		products[p.ID] = p
	}

	if len(rows) != len(ids) {
		for _, id := range ids {
			if _, ok := products[id]; !ok {
				return nil, apperr.Newf(apperr.NotFound, "Product %s not found", id)
			}
		}
		return nil, apperr.New(apperr.NotFound, "One or more products not found")
	}
	return products, nil
}
