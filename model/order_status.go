package model

type OrderStatus struct {
	Base
	Name string `db:"name" json:"name"`
	Code string `db:"code" json:"code"`
}
