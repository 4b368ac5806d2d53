package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/smartbiz/backend/internal/application/adapter"
	"github.com/smartbiz/backend/internal/domain/entity"
	domainerror "github.com/smartbiz/backend/internal/domain/error"
	"github.com/smartbiz/backend/internal/integration/persistence/model"
)

// itemRepository implements the adapter.ItemRepository interface.
type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new item repository instance.
func NewItemRepository(db *gorm.DB) adapter.ItemRepository {
	return &itemRepository{
		db: db,
	}
}

// Create inserts a new item.
func (r *itemRepository) Create(ctx context.Context, item *entity.Item) error {
	return r.db.WithContext(ctx).Create(model.ItemModelFromEntity(item)).Error
}

// FindByIDAndOwner retrieves an item scoped to its owner.
func (r *itemRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Item, error) {
	return r.find(r.db.WithContext(ctx), id, ownerID)
}

// FindForUpdate retrieves an item scoped to its owner and locks the row.
// SQLite has no row locks; its writers are serialized by the database lock instead.
func (r *itemRepository) FindForUpdate(ctx context.Context, id, ownerID uuid.UUID) (*entity.Item, error) {
	query := r.db.WithContext(ctx)
	if query.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.find(query, id, ownerID)
}

func (r *itemRepository) find(query *gorm.DB, id, ownerID uuid.UUID) (*entity.Item, error) {
	var itemModel model.ItemModel
	result := query.Where("id = ? AND user_id = ?", id, ownerID).First(&itemModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrItemNotFound
		}
		return nil, result.Error
	}
	return itemModel.ToEntity(), nil
}

// ListByOwner returns all items of an owner ordered by name.
func (r *itemRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Item, error) {
	var models []model.ItemModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("name ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	items := make([]*entity.Item, len(models))
	for i := range models {
		items[i] = models[i].ToEntity()
	}
	return items, nil
}

// AdjustQuantity applies delta with a conditional update so the quantity can never
// go below zero, even without a prior row lock.
func (r *itemRepository) AdjustQuantity(ctx context.Context, id, ownerID uuid.UUID, delta int64) (*entity.Item, error) {
	db := r.db.WithContext(ctx)
	if delta == 0 {
		return r.find(db, id, ownerID)
	}

	result := db.Model(&model.ItemModel{}).
		Where("id = ? AND user_id = ? AND quantity + ? >= 0", id, ownerID, delta).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		// Either the item is gone or the stock is too low
		if _, err := r.find(db, id, ownerID); err != nil {
			return nil, err
		}
		return nil, domainerror.ErrInsufficientStock
	}

	return r.find(db, id, ownerID)
}

// Update saves the name and unit price of an item.
func (r *itemRepository) Update(ctx context.Context, item *entity.Item) error {
	result := r.db.WithContext(ctx).
		Model(&model.ItemModel{}).
		Where("id = ? AND user_id = ?", item.ID, item.OwnerID).
		Updates(map[string]any{
			"name":       item.Name,
			"unit_price": item.UnitPrice,
			"updated_at": item.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrItemNotFound
	}
	return nil
}

// Delete removes an item scoped to its owner.
func (r *itemRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.ItemModel{}, "id = ? AND user_id = ?", id, ownerID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrItemNotFound
	}
	return nil
}
