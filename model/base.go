package model

import "time"

// Base carries the surrogate identifier and bookkeeping timestamps shared by
// every persisted entity. IDs are UUID strings generated at insert time.
type Base struct {
	ID        string    `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
