package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// WithTransaction runs fn inside a transaction bound to ctx. Returning an error from fn
// rolls back; returning nil commits.
//
// Usage:
//
//	err := WithTransaction(ctx, db, func(tx *gorm.DB) error {
//	    if err := tx.Model(&model.Member{}).Where("id = ?", id).Updates(values).Error; err != nil {
//	        return err // rollback
//	    }
//	    return tx.First(&updated, "id = ?", id).Error
//	})
func WithTransaction(ctx context.Context, db *gorm.DB, fn func(*gorm.DB) error) error {
	if fn == nil {
		return errors.New("database: transaction function is nil")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	return db.WithContext(ctx).Transaction(fn)
}
