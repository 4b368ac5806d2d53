package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbiz/backend/internal/application/adapter"
	"github.com/smartbiz/backend/internal/domain/entity"
)

// ListItemsInput represents the input for listing an owner's stock.
type ListItemsInput struct {
	OwnerID uuid.UUID
}

// ListItemsOutput represents an owner's stock and its valuation at stored prices.
type ListItemsOutput struct {
	Items      []*entity.Item
	TotalUnits int64
	StockValue decimal.Decimal
}

// ListItemsUseCase lists all items of an owner.
type ListItemsUseCase struct {
	itemRepo adapter.ItemRepository
}

// NewListItemsUseCase creates a new ListItemsUseCase instance.
func NewListItemsUseCase(itemRepo adapter.ItemRepository) *ListItemsUseCase {
	return &ListItemsUseCase{itemRepo: itemRepo}
}

// Execute lists the owner's items. An unknown owner simply has no items.
func (uc *ListItemsUseCase) Execute(ctx context.Context, input ListItemsInput) (*ListItemsOutput, error) {
	items, err := uc.itemRepo.ListByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	output := &ListItemsOutput{Items: items, StockValue: decimal.Zero}
	for _, item := range items {
		output.TotalUnits += item.QuantityOnHand
		output.StockValue = output.StockValue.Add(item.Valuation())
	}
	return output, nil
}
