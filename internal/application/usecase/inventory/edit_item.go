package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbiz/backend/internal/application/adapter"
	"github.com/smartbiz/backend/internal/domain/entity"
)

// EditItemInput represents the input for renaming or repricing an item.
// Stock levels only change through sales and purchases.
type EditItemInput struct {
	ItemID    uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	UnitPrice decimal.Decimal
}

// EditItemOutput represents the output of editing an item.
type EditItemOutput struct {
	Item *entity.Item
}

// EditItemUseCase handles item edits.
type EditItemUseCase struct {
	itemRepo adapter.ItemRepository
}

// NewEditItemUseCase creates a new EditItemUseCase instance.
func NewEditItemUseCase(itemRepo adapter.ItemRepository) *EditItemUseCase {
	return &EditItemUseCase{itemRepo: itemRepo}
}

// Execute updates the item's name and unit price.
func (uc *EditItemUseCase) Execute(ctx context.Context, input EditItemInput) (*EditItemOutput, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := validatePrice(input.UnitPrice); err != nil {
		return nil, err
	}

	item, err := uc.itemRepo.FindByIDAndOwner(ctx, input.ItemID, input.OwnerID)
	if err != nil {
		return nil, translateItemError(err, "find item")
	}

	item.Name = name
	item.UnitPrice = input.UnitPrice
	item.UpdatedAt = time.Now().UTC()

	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, translateItemError(err, fmt.Sprintf("update item %s", item.ID))
	}

	return &EditItemOutput{Item: item}, nil
}
