package model

import "github.com/shopspring/decimal"

// Order is the priced aggregate root: its TotalPrice always equals the sum of
// its items' subtotals and is persisted together with any item replacement.
type Order struct {
	Base
	SupplierID string          `db:"supplier_id" json:"supplierId"`
	CustomerID string          `db:"customer_id" json:"customerId"`
	StatusID   string          `db:"status_id" json:"statusId"`
	Address    string          `db:"address" json:"address"`
	TotalPrice decimal.Decimal `db:"total_price" json:"totalPrice"`

	Supplier *Supplier    `db:"-" json:"supplier,omitempty"`
	Customer *Customer    `db:"-" json:"customer,omitempty"`
	Status   *OrderStatus `db:"-" json:"status,omitempty"`
	Items    []OrderItem  `db:"-" json:"items,omitempty"`
}

// OrderItem freezes the product price at creation time: Subtotal is
// price x quantity when the item is written and is never recomputed.
type OrderItem struct {
	Base
	OrderID   string          `db:"order_id" json:"orderId"`
	ProductID string          `db:"product_id" json:"productId"`
	Quantity  int             `db:"quantity" json:"quantity"`
	Subtotal  decimal.Decimal `db:"subtotal" json:"subtotal"`

	Product *Product `db:"-" json:"product,omitempty"`
}
