// Package bookkeeping coordinates sales and purchases across the inventory ledger,
// the transaction history and the profit aggregate.
//
// Every operation validates its input, checks the owner, then runs the stock change,
// the history append and the aggregate upsert inside one unit of work.
package bookkeeping

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/smartbiz/backend/internal/application/adapter"
	"github.com/smartbiz/backend/internal/domain/entity"
	domainerror "github.com/smartbiz/backend/internal/domain/error"
	"github.com/smartbiz/backend/internal/domain/valueobject"
)

func validateQuantity(quantity int64) error {
	if quantity <= 0 {
		return domainerror.NewBookkeepingError(
			domainerror.ErrCodeInvalidQuantity,
			"quantity must be a positive integer",
			domainerror.ErrInvalidTransactionQuantity,
		)
	}
	return nil
}

func parseMoment(date, clock string) (valueobject.BusinessMoment, error) {
	d, err := valueobject.ParseBusinessDate(date)
	if err != nil {
		return valueobject.BusinessMoment{}, domainerror.NewBookkeepingError(
			domainerror.ErrCodeInvalidDate,
			err.Error(),
			domainerror.ErrInvalidTransactionDate,
		)
	}
	c, err := valueobject.ParseBusinessClock(clock)
	if err != nil {
		return valueobject.BusinessMoment{}, domainerror.NewBookkeepingError(
			domainerror.ErrCodeInvalidTime,
			err.Error(),
			domainerror.ErrInvalidTransactionTime,
		)
	}
	return valueobject.BusinessMoment{Date: d, Clock: c}, nil
}

func ensureOwner(ctx context.Context, users adapter.UserRepository, ownerID uuid.UUID) error {
	if _, err := users.FindByID(ctx, ownerID); err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return domainerror.NewBookkeepingError(
				domainerror.ErrCodeOwnerMissing,
				"owner not found",
				domainerror.ErrOwnerNotFound,
			)
		}
		return fmt.Errorf("failed to find owner: %w", err)
	}
	return nil
}

func lockItem(ctx context.Context, items adapter.ItemRepository, itemID, ownerID uuid.UUID) (*entity.Item, error) {
	item, err := items.FindForUpdate(ctx, itemID, ownerID)
	if err != nil {
		if errors.Is(err, domainerror.ErrItemNotFound) {
			return nil, itemMissing(itemID)
		}
		return nil, fmt.Errorf("failed to lock item: %w", err)
	}
	return item, nil
}

func adjustStock(ctx context.Context, items adapter.ItemRepository, item *entity.Item, delta int64) (*entity.Item, error) {
	updated, err := items.AdjustQuantity(ctx, item.ID, item.OwnerID, delta)
	if err != nil {
		switch {
		case errors.Is(err, domainerror.ErrInsufficientStock):
			return nil, stockTooLow(item, -delta)
		case errors.Is(err, domainerror.ErrItemNotFound):
			return nil, itemMissing(item.ID)
		}
		return nil, fmt.Errorf("failed to adjust stock of item %s: %w", item.ID, err)
	}
	return updated, nil
}

func itemMissing(itemID uuid.UUID) error {
	return domainerror.NewBookkeepingError(
		domainerror.ErrCodeItemMissing,
		fmt.Sprintf("item %s not found", itemID),
		domainerror.ErrItemNotFound,
	)
}

func stockTooLow(item *entity.Item, requested int64) error {
	return domainerror.NewBookkeepingError(
		domainerror.ErrCodeStockTooLow,
		fmt.Sprintf("insufficient stock for %q: requested %d, available %d", item.Name, requested, item.QuantityOnHand),
		domainerror.ErrInsufficientStock,
	)
}

// invalidateTotals drops the owner's cached totals after a committed write.
// A failure only delays freshness until the cache entry expires.
func invalidateTotals(ctx context.Context, cache adapter.TotalsCache, ownerID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, ownerID); err != nil {
		slog.Warn("Failed to invalidate cached totals", "error", err, "ownerID", ownerID)
	}
}
