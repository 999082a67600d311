package model

import "github.com/shopspring/decimal"

type Product struct {
	Base
	Name        string          `db:"name" json:"name"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Description string          `db:"description" json:"description"`
}
