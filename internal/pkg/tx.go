package pkg

import (
	"context"

	"gorm.io/gorm"
)

// WithTx runs fn inside a transaction bound to ctx. The transaction commits
// when fn returns nil and rolls back when fn returns an error or panics; a
// panic is re-raised after the rollback. Called with a db that is already in a
// transaction, fn runs under a savepoint instead.
//
// fn must issue every statement through tx. On a single-connection pool the
// outer db would block waiting for the connection tx holds.
func WithTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn)
}
