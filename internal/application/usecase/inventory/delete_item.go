package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/smartbiz/backend/internal/application/adapter"
)

// DeleteItemInput represents the input for removing an item.
type DeleteItemInput struct {
	ItemID  uuid.UUID
	OwnerID uuid.UUID
}

// DeleteItemUseCase removes an item from the owner's stock.
// History rows that reference the item are kept.
type DeleteItemUseCase struct {
	itemRepo adapter.ItemRepository
}

// NewDeleteItemUseCase creates a new DeleteItemUseCase instance.
func NewDeleteItemUseCase(itemRepo adapter.ItemRepository) *DeleteItemUseCase {
	return &DeleteItemUseCase{itemRepo: itemRepo}
}

// Execute deletes the item or returns a not-found error when it is absent for this owner.
func (uc *DeleteItemUseCase) Execute(ctx context.Context, input DeleteItemInput) error {
	if err := uc.itemRepo.Delete(ctx, input.ItemID, input.OwnerID); err != nil {
		return translateItemError(err, "delete item")
	}
	return nil
}
