package seed

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var (
	countStatusQuery  = "SELECT count(*) FROM order_statuses WHERE name = ? AND code = ?"
	insertStatusQuery = "INSERT INTO order_statuses (id, name, code, created_at, updated_at) VALUES (?, ?, ?, ?, ?)"

	countMethodQuery  = "SELECT count(*) FROM payment_methods WHERE name = ? AND description = ?"
	insertMethodQuery = "INSERT INTO payment_methods (id, name, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?)"
)

// Apply inserts every seeded status and payment method that is not already
// present. Safe to run on every process start.
func Apply(ctx context.Context, db *sqlx.DB, t Table) error {
	for _, s := range t.statuses {
		var count int
		err := db.GetContext(ctx, &count, countStatusQuery, s.Name, s.Code)
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		now := time.Now()
		_, err = db.ExecContext(ctx, insertStatusQuery, uuid.NewString(), s.Name, s.Code, now, now)
		if err != nil {
			return err
		}
	}

	for _, m := range t.methods {
		var count int
		err := db.GetContext(ctx, &count, countMethodQuery, m.Name, m.Description)
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		now := time.Now()
		_, err = db.ExecContext(ctx, insertMethodQuery, uuid.NewString(), m.Name, m.Description, now, now)
		if err != nil {
			return err
		}
	}
	return nil
}
