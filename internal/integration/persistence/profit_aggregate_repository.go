package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/smartbiz/backend/internal/application/adapter"
	"github.com/smartbiz/backend/internal/domain/entity"
	domainerror "github.com/smartbiz/backend/internal/domain/error"
	"github.com/smartbiz/backend/internal/integration/persistence/model"
)

// profitAggregateRepository implements the adapter.ProfitAggregateRepository interface.
// Writes are meant to run inside the caller's transaction.
type profitAggregateRepository struct {
	db *gorm.DB
}

// NewProfitAggregateRepository creates a new profit aggregate repository instance.
func NewProfitAggregateRepository(db *gorm.DB) adapter.ProfitAggregateRepository {
	return &profitAggregateRepository{
		db: db,
	}
}

// ApplyIncome adds amount to total_income.
func (r *profitAggregateRepository) ApplyIncome(ctx context.Context, ownerID uuid.UUID, amount decimal.Decimal) error {
	return r.apply(ctx, ownerID, "total_income", amount)
}

// ApplyExpense adds amount to total_expense.
func (r *profitAggregateRepository) ApplyExpense(ctx context.Context, ownerID uuid.UUID, amount decimal.Decimal) error {
	return r.apply(ctx, ownerID, "total_expense", amount)
}

// apply inserts a zero row if absent, increments one total in place and then
// recomputes the profit from the stored totals. The increment takes the row lock,
// so concurrent writers for one owner serialize until commit.
func (r *profitAggregateRepository) apply(ctx context.Context, ownerID uuid.UUID, column string, amount decimal.Decimal) error {
	db := r.db.WithContext(ctx)
	now := time.Now().UTC()

	seed := &model.ProfitAggregateModel{
		UserID:       ownerID,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		TotalProfit:  decimal.Zero,
		UpdatedAt:    now,
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(seed).Error; err != nil {
		return err
	}

	if err := db.Model(&model.ProfitAggregateModel{}).
		Where("user_id = ?", ownerID).
		Updates(map[string]any{
			column:       gorm.Expr(column+" + ?", amount),
			"updated_at": now,
		}).Error; err != nil {
		return err
	}

	return db.Model(&model.ProfitAggregateModel{}).
		Where("user_id = ?", ownerID).
		Update("total_profit", gorm.Expr("total_income - total_expense")).Error
}

// GetTotals returns the owner's aggregate.
func (r *profitAggregateRepository) GetTotals(ctx context.Context, ownerID uuid.UUID) (*entity.ProfitAggregate, error) {
	var m model.ProfitAggregateModel
	result := r.db.WithContext(ctx).Where("user_id = ?", ownerID).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTotalsNotFound
		}
		return nil, result.Error
	}
	return m.ToEntity(), nil
}

// Rebuild overwrites the owner's totals, creating the row if needed.
func (r *profitAggregateRepository) Rebuild(ctx context.Context, ownerID uuid.UUID, income, expense decimal.Decimal) (*entity.ProfitAggregate, error) {
	aggregate := entity.NewProfitAggregate(ownerID, income, expense)
	m := &model.ProfitAggregateModel{
		UserID:       aggregate.OwnerID,
		TotalIncome:  aggregate.TotalIncome,
		TotalExpense: aggregate.TotalExpense,
		TotalProfit:  aggregate.TotalProfit,
		UpdatedAt:    aggregate.UpdatedAt,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"total_income", "total_expense", "total_profit", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return nil, err
	}
	return aggregate, nil
}
