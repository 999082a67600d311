// Package sqltx scopes every multi-row aggregate mutation to a single
// transaction. The transaction travels in the context so repository queries
// issued inside the closure run on it, and any error or panic rolls the whole
// unit back.
package sqltx

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

type txKey struct{}

// Transact runs fn inside a transaction. A nested call reuses the transaction
// already carried by the context.
func Transact(ctx context.Context, db *sqlx.DB, fn func(ctx context.Context) error) error {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok && tx != nil {
		return fn(ctx)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		} else if err != nil {
			_ = tx.Rollback()
		}
	}()

	err = fn(context.WithValue(ctx, txKey{}, tx))
	if err != nil {
		return err
	}
	err = tx.Commit()
	return err
}

// Ext returns the transaction carried by ctx, or db when none is in flight.
func Ext(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok && tx != nil {
		return tx
	}
	return db
}

const mysqlDuplicateEntry = 1062

// IsDuplicateEntry reports whether err is a MySQL unique-key violation, so
// services can map it to a Conflict instead of a generic failure.
func IsDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlDuplicateEntry
	}
	return false
}
