// Package inventory contains the inventory ledger use cases.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbiz/backend/internal/application/adapter"
	domainerror "github.com/smartbiz/backend/internal/domain/error"
	"github.com/smartbiz/backend/internal/domain/valueobject"
)

// MaxItemNameLength is the longest accepted item name.
const MaxItemNameLength = 100

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxItemNameLength {
		return "", domainerror.NewInventoryError(
			domainerror.ErrCodeInvalidItemName,
			fmt.Sprintf("item name is required and must be at most %d characters", MaxItemNameLength),
			domainerror.ErrInvalidItemName,
		)
	}
	return name, nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return domainerror.NewInventoryError(
			domainerror.ErrCodeNegativePrice,
			"unit price must not be negative",
			domainerror.ErrNegativePrice,
		)
	}
	if !valueobject.FitsPriceColumn(price) {
		return domainerror.NewInventoryError(
			domainerror.ErrCodePriceOutOfRange,
			domainerror.ErrPriceOutOfRange.Error(),
			domainerror.ErrPriceOutOfRange,
		)
	}
	return nil
}

func ensureOwner(ctx context.Context, users adapter.UserRepository, ownerID uuid.UUID) error {
	if _, err := users.FindByID(ctx, ownerID); err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return domainerror.NewInventoryError(
				domainerror.ErrCodeOwnerNotFound,
				"owner not found",
				domainerror.ErrOwnerNotFound,
			)
		}
		return fmt.Errorf("failed to find owner: %w", err)
	}
	return nil
}

// translateItemError wraps the repository's not-found sentinel in a coded error.
func translateItemError(err error, action string) error {
	if errors.Is(err, domainerror.ErrItemNotFound) {
		return domainerror.NewInventoryError(
			domainerror.ErrCodeItemNotFound,
			"item not found",
			domainerror.ErrItemNotFound,
		)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
