package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/smartbiz/backend/internal/domain/entity"
)

// ItemRepository defines the interface for inventory persistence operations.
// Every lookup is scoped to the owner; an item owned by someone else is reported as not found.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error

	// FindByIDAndOwner returns domainerror.ErrItemNotFound when the item is absent for this owner.
	FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Item, error)

	// FindForUpdate loads the item and takes a row lock for the rest of the transaction
	// where the storage engine supports it.
	FindForUpdate(ctx context.Context, id, ownerID uuid.UUID) (*entity.Item, error)

	// ListByOwner returns all items of an owner ordered by name.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Item, error)

	// AdjustQuantity adds delta to the quantity on hand and returns the updated item.
	// It fails with domainerror.ErrInsufficientStock when the result would be negative.
	AdjustQuantity(ctx context.Context, id, ownerID uuid.UUID, delta int64) (*entity.Item, error)

	// Update saves the name and unit price of an item.
	Update(ctx context.Context, item *entity.Item) error

	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}
