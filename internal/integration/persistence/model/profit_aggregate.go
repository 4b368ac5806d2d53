package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbiz/backend/internal/domain/entity"
)

// ProfitAggregateModel represents the profit_aggregate table, one row per owner.
type ProfitAggregateModel struct {
	UserID       uuid.UUID       `gorm:"type:char(36);primaryKey"`
	TotalIncome  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalExpense decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalProfit  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ProfitAggregateModel.
func (ProfitAggregateModel) TableName() string {
	return "profit_aggregate"
}

// ToEntity converts a ProfitAggregateModel to a domain ProfitAggregate entity.
func (m *ProfitAggregateModel) ToEntity() *entity.ProfitAggregate {
	return &entity.ProfitAggregate{
		OwnerID:      m.UserID,
		TotalIncome:  m.TotalIncome,
		TotalExpense: m.TotalExpense,
		TotalProfit:  m.TotalProfit,
		UpdatedAt:    m.UpdatedAt,
	}
}
