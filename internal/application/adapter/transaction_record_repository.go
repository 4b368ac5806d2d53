package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/smartbiz/backend/internal/domain/entity"
)

// TransactionRecordRepository appends to and reads the income and expense history.
// There is no update or delete: history is append-only.
type TransactionRecordRepository interface {
	// RecordIncome appends a sale to the income history.
	RecordIncome(ctx context.Context, record *entity.TransactionRecord) error

	// RecordExpense appends a purchase to the expense history.
	RecordExpense(ctx context.Context, record *entity.TransactionRecord) error

	// ListByOwner returns one lifeline of an owner's history, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, kind entity.TransactionKind) ([]*entity.TransactionRecord, error)

	// SumTotals sums both lifelines of an owner's history.
	SumTotals(ctx context.Context, ownerID uuid.UUID) (*entity.TransactionTotals, error)
}
