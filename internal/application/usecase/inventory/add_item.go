package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbiz/backend/internal/application/adapter"
	"github.com/smartbiz/backend/internal/domain/entity"
	domainerror "github.com/smartbiz/backend/internal/domain/error"
)

// AddItemInput represents the input for stocking a new item.
type AddItemInput struct {
	OwnerID   uuid.UUID
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int64
}

// AddItemOutput represents the output of stocking a new item.
type AddItemOutput struct {
	Item *entity.Item
}

// AddItemUseCase handles item creation.
type AddItemUseCase struct {
	itemRepo adapter.ItemRepository
	userRepo adapter.UserRepository
}

// NewAddItemUseCase creates a new AddItemUseCase instance.
func NewAddItemUseCase(itemRepo adapter.ItemRepository, userRepo adapter.UserRepository) *AddItemUseCase {
	return &AddItemUseCase{
		itemRepo: itemRepo,
		userRepo: userRepo,
	}
}

// Execute stocks a new item for the owner.
func (uc *AddItemUseCase) Execute(ctx context.Context, input AddItemInput) (*AddItemOutput, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := validatePrice(input.UnitPrice); err != nil {
		return nil, err
	}
	if input.Quantity < 0 {
		return nil, domainerror.NewInventoryError(
			domainerror.ErrCodeNegativeQuantity,
			"quantity must not be negative",
			domainerror.ErrNegativeQuantity,
		)
	}

	if err := ensureOwner(ctx, uc.userRepo, input.OwnerID); err != nil {
		return nil, err
	}

	item := entity.NewItem(input.OwnerID, name, input.UnitPrice, input.Quantity)
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return &AddItemOutput{Item: item}, nil
}
