package model

// Inventory is a stock record per supplier and location. Items carry
// quantities only, no valuation.
type Inventory struct {
	Base
	SupplierID string `db:"supplier_id" json:"supplierId"`
	Location   string `db:"location" json:"location"`

	Supplier *Supplier       `db:"-" json:"supplier,omitempty"`
	Items    []InventoryItem `db:"-" json:"items,omitempty"`
}

type InventoryItem struct {
	Base
	InventoryID string `db:"inventory_id" json:"inventoryId"`
	ProductID   string `db:"product_id" json:"productId"`
	Quantity    int    `db:"quantity" json:"quantity"`

	Product *Product `db:"-" json:"product,omitempty"`
}
