package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/smartbiz/backend/internal/domain/entity"
)

// TotalsCache is a read-through cache of profit aggregates.
//
// Readers take Version before loading from storage and hand it back to SetIfVersion,
// so a value loaded before a concurrent Invalidate is never written back.
type TotalsCache interface {
	// Get returns (nil, nil) on a cache miss.
	Get(ctx context.Context, ownerID uuid.UUID) (*entity.ProfitAggregate, error)
	// Version returns the owner's invalidation counter.
	Version(ctx context.Context, ownerID uuid.UUID) (int64, error)
	// SetIfVersion stores the aggregate only while the counter still equals version.
	SetIfVersion(ctx context.Context, aggregate *entity.ProfitAggregate, version int64) (bool, error)
	// Invalidate drops the entry and bumps the owner's counter.
	Invalidate(ctx context.Context, ownerID uuid.UUID) error
	Ping(ctx context.Context) error
}
