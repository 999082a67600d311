// Package event defines the change-feed payloads written to the outbox when
// an aggregate is mutated.
package event

type Op string

const (
	OpCreated Op = "created"
	OpUpdated Op = "updated"
	OpDeleted Op = "deleted"
)

const (
	AggregateOrder     = "order"
	AggregateInventory = "inventory"
	AggregatePayment   = "payment"
)

type AggregateChanged struct {
	Aggregate   string `json:"aggregate"`
	Op          Op     `json:"op"`
	AggregateID string `json:"aggregate_id"`
}
