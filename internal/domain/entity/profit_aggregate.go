// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfitAggregate holds the running totals of one owner.
// TotalProfit always equals TotalIncome minus TotalExpense.
type ProfitAggregate struct {
	OwnerID      uuid.UUID
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	TotalProfit  decimal.Decimal
	UpdatedAt    time.Time
}

// NewProfitAggregate builds an aggregate from its two running totals.
func NewProfitAggregate(ownerID uuid.UUID, income, expense decimal.Decimal) *ProfitAggregate {
	return &ProfitAggregate{
		OwnerID:      ownerID,
		TotalIncome:  income,
		TotalExpense: expense,
		TotalProfit:  income.Sub(expense),
		UpdatedAt:    time.Now().UTC(),
	}
}

// IsConsistent reports whether the stored profit matches income minus expense.
func (p *ProfitAggregate) IsConsistent() bool {
	return p.TotalProfit.Equal(p.TotalIncome.Sub(p.TotalExpense))
}
