package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"triagem/internal/ports"
)

// dbFromContext prefers an ambient unit-of-work transaction over the plain
// handle so cascades commit or roll back as one write.
func dbFromContext(ctx context.Context, fallback *gorm.DB) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx)
	if tx == nil {
		return fallback.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}
