package infrastructure

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// TxManager carries a gorm transaction through the context so that
// repositories called inside WithinTransaction all hit the same tx.
type TxManager struct {
	DB *gorm.DB
}

func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{DB: db}
}

func (m *TxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		// already inside a transaction, join it
		return fn(ctx)
	}

	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFrom resolves the handle a repository should use: the transaction carried
// by the context when present, the plain connection otherwise.
func dbFrom(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db
}
