package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/smartbiz/backend/internal/application/adapter"
)

// unitOfWork implements adapter.UnitOfWork on a gorm transaction.
type unitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a unit of work over the given connection pool.
func NewUnitOfWork(db *gorm.DB) adapter.UnitOfWork {
	return &unitOfWork{db: db}
}

// Execute leases one connection, begins a transaction and hands fn repositories bound
// to it. gorm commits when fn returns nil and rolls back on error or panic.
func (u *unitOfWork) Execute(ctx context.Context, fn func(repos adapter.TxRepositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(adapter.TxRepositories{
			Items:      NewItemRepository(tx),
			Records:    NewTransactionRecordRepository(tx),
			Aggregates: NewProfitAggregateRepository(tx),
		})
	})
}
