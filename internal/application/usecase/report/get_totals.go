// Package report contains read-side use cases over the profit aggregate and history.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/smartbiz/backend/internal/application/adapter"
	"github.com/smartbiz/backend/internal/domain/entity"
	domainerror "github.com/smartbiz/backend/internal/domain/error"
)

// GetTotalsInput represents the input for reading an owner's totals.
type GetTotalsInput struct {
	OwnerID uuid.UUID
}

// GetTotalsOutput represents an owner's running totals.
type GetTotalsOutput struct {
	Aggregate *entity.ProfitAggregate
	Cached    bool
}

// GetTotalsUseCase reads the profit aggregate through the totals cache.
type GetTotalsUseCase struct {
	aggregateRepo adapter.ProfitAggregateRepository
	totalsCache   adapter.TotalsCache
}

// NewGetTotalsUseCase creates a new GetTotalsUseCase instance.
// totalsCache may be nil.
func NewGetTotalsUseCase(aggregateRepo adapter.ProfitAggregateRepository, totalsCache adapter.TotalsCache) *GetTotalsUseCase {
	return &GetTotalsUseCase{
		aggregateRepo: aggregateRepo,
		totalsCache:   totalsCache,
	}
}

// Execute returns the owner's totals, or a not-found error when the owner never transacted.
func (uc *GetTotalsUseCase) Execute(ctx context.Context, input GetTotalsInput) (*GetTotalsOutput, error) {
	var (
		version   int64
		cacheable bool
	)
	if uc.totalsCache != nil {
		cached, err := uc.totalsCache.Get(ctx, input.OwnerID)
		if err != nil {
			slog.Warn("Totals cache read failed", "error", err, "ownerID", input.OwnerID)
		} else if cached != nil {
			return &GetTotalsOutput{Aggregate: cached, Cached: true}, nil
		}

		// Taken before the storage read; a write committed after this point bumps it.
		if version, err = uc.totalsCache.Version(ctx, input.OwnerID); err == nil {
			cacheable = true
		}
	}

	aggregate, err := uc.aggregateRepo.GetTotals(ctx, input.OwnerID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTotalsNotFound) {
			return nil, domainerror.NewBookkeepingError(
				domainerror.ErrCodeTotalsNotFound,
				"no totals recorded for this owner",
				domainerror.ErrTotalsNotFound,
			)
		}
		return nil, fmt.Errorf("failed to get totals: %w", err)
	}

	if cacheable {
		written, err := uc.totalsCache.SetIfVersion(ctx, aggregate, version)
		switch {
		case err != nil:
			slog.Warn("Totals cache write failed", "error", err, "ownerID", input.OwnerID)
		case !written:
			slog.Debug("Skipped caching totals invalidated during the read", "ownerID", input.OwnerID)
		}
	}

	return &GetTotalsOutput{Aggregate: aggregate}, nil
}
