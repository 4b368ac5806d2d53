package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbiz/backend/internal/domain/entity"
)

// ProfitAggregateRepository maintains the running totals row of each owner.
type ProfitAggregateRepository interface {
	// ApplyIncome adds amount to the owner's income total, creating the row if absent,
	// and recomputes the profit.
	ApplyIncome(ctx context.Context, ownerID uuid.UUID, amount decimal.Decimal) error

	// ApplyExpense adds amount to the owner's expense total, creating the row if absent,
	// and recomputes the profit.
	ApplyExpense(ctx context.Context, ownerID uuid.UUID, amount decimal.Decimal) error

	// GetTotals returns domainerror.ErrTotalsNotFound when the owner never transacted.
	GetTotals(ctx context.Context, ownerID uuid.UUID) (*entity.ProfitAggregate, error)

	// Rebuild overwrites the owner's totals.
	Rebuild(ctx context.Context, ownerID uuid.UUID, income, expense decimal.Decimal) (*entity.ProfitAggregate, error)
}
