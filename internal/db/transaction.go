package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WithTransaction executes a function within a database transaction
// The transaction is automatically committed if the function returns nil
// or rolled back if the function returns an error or panics
func (db *DB) WithTransaction(ctx context.Context, fn func(*gorm.DB) error) error {
	return db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := fn(tx); err != nil {
			return fmt.Errorf("transaction error: %w", err)
		}
		return nil
	})
}

func lockingClause() clause.Locking {
	return clause.Locking{Strength: clause.LockingStrengthUpdate}
}

// Increment returns an atomic "column + n" update expression
func Increment(column string, n int64) clause.Expr {
	return gorm.Expr(column+" + ?", n)
}

// Decrement returns an atomic "column - n" update expression clamped at zero
func Decrement(column string, n int64) clause.Expr {
	return gorm.Expr("CASE WHEN "+column+" >= ? THEN "+column+" - ? ELSE 0 END", n, n)
}
