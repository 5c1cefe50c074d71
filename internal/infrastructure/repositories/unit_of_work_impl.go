package repositories

import (
	"context"
	"fmt"

	domainrepos "company-site.backend/internal/domain/repositories"
	"gorm.io/gorm"
)

type txContextKey struct{}

var commitTx = func(tx *gorm.DB) error {
	return tx.Commit().Error
}

// GormUnitOfWork opens one GORM transaction per outermost Do.
type GormUnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) domainrepos.UnitOfWork {
	return &GormUnitOfWork{db: db}
}

func (u *GormUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFrom(ctx) != nil {
		return fn(ctx)
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	if err := fn(context.WithValue(ctx, txContextKey{}, tx)); err != nil {
		tx.Rollback()
		return err
	}
	if err := commitTx(tx); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func txFrom(ctx context.Context) *gorm.DB {
	tx, _ := ctx.Value(txContextKey{}).(*gorm.DB)
	return tx
}

// GetDB returns the transaction carried by ctx, else fallback. Every
// repository in this package reads through it.
func GetDB(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx := txFrom(ctx); tx != nil {
		return tx
	}
	return fallback
}
