package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/smartbiz/backend/internal/application/adapter"
	"github.com/smartbiz/backend/internal/domain/entity"
)

// GetItemInput represents the input for looking up one item.
type GetItemInput struct {
	ItemID  uuid.UUID
	OwnerID uuid.UUID
}

// GetItemOutput represents the output of looking up one item.
type GetItemOutput struct {
	Item *entity.Item
}

// GetItemUseCase returns an item scoped to its owner.
type GetItemUseCase struct {
	itemRepo adapter.ItemRepository
}

// NewGetItemUseCase creates a new GetItemUseCase instance.
func NewGetItemUseCase(itemRepo adapter.ItemRepository) *GetItemUseCase {
	return &GetItemUseCase{itemRepo: itemRepo}
}

// Execute returns the item or a not-found error when it is absent for this owner.
func (uc *GetItemUseCase) Execute(ctx context.Context, input GetItemInput) (*GetItemOutput, error) {
	item, err := uc.itemRepo.FindByIDAndOwner(ctx, input.ItemID, input.OwnerID)
	if err != nil {
		return nil, translateItemError(err, "find item")
	}
	return &GetItemOutput{Item: item}, nil
}
