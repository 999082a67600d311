package model

import "github.com/shopspring/decimal"

// Payment is 1:1 with Order; the one-payment-per-order rule is enforced at
// the service level on top of the schema's unique key.
type Payment struct {
	Base
	OrderID  string          `db:"order_id" json:"orderId"`
	MethodID string          `db:"method_id" json:"methodId"`
	Amount   decimal.Decimal `db:"amount" json:"amount"`
	IsPaid   bool            `db:"is_paid" json:"isPaid"`

	Order  *Order         `db:"-" json:"order,omitempty"`
	Method *PaymentMethod `db:"-" json:"method,omitempty"`
}
