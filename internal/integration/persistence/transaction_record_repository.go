package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/smartbiz/backend/internal/application/adapter"
	"github.com/smartbiz/backend/internal/domain/entity"
	"github.com/smartbiz/backend/internal/integration/persistence/model"
)

// transactionRecordRepository implements the adapter.TransactionRecordRepository interface.
type transactionRecordRepository struct {
	db *gorm.DB
}

// NewTransactionRecordRepository creates a new transaction record repository instance.
func NewTransactionRecordRepository(db *gorm.DB) adapter.TransactionRecordRepository {
	return &transactionRecordRepository{
		db: db,
	}
}

// RecordIncome appends a row to income_history.
func (r *transactionRecordRepository) RecordIncome(ctx context.Context, record *entity.TransactionRecord) error {
	row := &model.IncomeHistoryModel{HistoryRow: model.HistoryRowFromEntity(record)}
	return r.db.WithContext(ctx).Create(row).Error
}

// RecordExpense appends a row to expense_history.
func (r *transactionRecordRepository) RecordExpense(ctx context.Context, record *entity.TransactionRecord) error {
	row := &model.ExpenseHistoryModel{HistoryRow: model.HistoryRowFromEntity(record)}
	return r.db.WithContext(ctx).Create(row).Error
}

// ListByOwner returns one lifeline of an owner's history, newest first.
func (r *transactionRecordRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, kind entity.TransactionKind) ([]*entity.TransactionRecord, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("tanggal DESC").
		Order("jam DESC").
		Order("created_at DESC")

	switch kind {
	case entity.TransactionKindIncome:
		var rows []model.IncomeHistoryModel
		if err := query.Find(&rows).Error; err != nil {
			return nil, err
		}
		records := make([]*entity.TransactionRecord, len(rows))
		for i := range rows {
			records[i] = rows[i].ToEntity(kind)
		}
		return records, nil
	case entity.TransactionKindExpense:
		var rows []model.ExpenseHistoryModel
		if err := query.Find(&rows).Error; err != nil {
			return nil, err
		}
		records := make([]*entity.TransactionRecord, len(rows))
		for i := range rows {
			records[i] = rows[i].ToEntity(kind)
		}
		return records, nil
	default:
		return nil, fmt.Errorf("unknown transaction kind %q", kind)
	}
}

// SumTotals sums total_amount over both history tables.
func (r *transactionRecordRepository) SumTotals(ctx context.Context, ownerID uuid.UUID) (*entity.TransactionTotals, error) {
	income, err := r.sum(ctx, &model.IncomeHistoryModel{}, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum income: %w", err)
	}
	expense, err := r.sum(ctx, &model.ExpenseHistoryModel{}, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expense: %w", err)
	}
	return &entity.TransactionTotals{IncomeTotal: income, ExpenseTotal: expense}, nil
}

func (r *transactionRecordRepository) sum(ctx context.Context, table any, ownerID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(table).
		Select("SUM(total_amount)").
		Where("user_id = ?", ownerID).
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
