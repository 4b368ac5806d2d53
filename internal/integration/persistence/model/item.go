package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbiz/backend/internal/domain/entity"
)

// ItemModel represents the items table in the database.
type ItemModel struct {
	ID        uuid.UUID       `gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID       `gorm:"type:char(36);index;not null"`
	Name      string          `gorm:"type:varchar(100);not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Quantity  int64           `gorm:"not null;default:0;check:chk_items_quantity,quantity >= 0"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ItemModel.
func (ItemModel) TableName() string {
	return "items"
}

// ToEntity converts an ItemModel to a domain Item entity.
func (m *ItemModel) ToEntity() *entity.Item {
	return &entity.Item{
		ID:             m.ID,
		OwnerID:        m.UserID,
		Name:           m.Name,
		UnitPrice:      m.UnitPrice,
		QuantityOnHand: m.Quantity,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// ItemModelFromEntity creates an ItemModel from a domain Item entity.
func ItemModelFromEntity(item *entity.Item) *ItemModel {
	return &ItemModel{
		ID:        item.ID,
		UserID:    item.OwnerID,
		Name:      item.Name,
		UnitPrice: item.UnitPrice,
		Quantity:  item.QuantityOnHand,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}
