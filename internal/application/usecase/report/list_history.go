package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbiz/backend/internal/application/adapter"
	"github.com/smartbiz/backend/internal/domain/entity"
)

// ListHistoryInput selects one lifeline of an owner's history.
type ListHistoryInput struct {
	OwnerID uuid.UUID
	Kind    entity.TransactionKind
}

// ListHistoryOutput holds the records, newest first, and their sum.
type ListHistoryOutput struct {
	Records []*entity.TransactionRecord
	Total   decimal.Decimal
}

// ListHistoryUseCase lists an owner's income or expense history.
type ListHistoryUseCase struct {
	recordRepo adapter.TransactionRecordRepository
}

// NewListHistoryUseCase creates a new ListHistoryUseCase instance.
func NewListHistoryUseCase(recordRepo adapter.TransactionRecordRepository) *ListHistoryUseCase {
	return &ListHistoryUseCase{recordRepo: recordRepo}
}

// Execute lists the selected history.
func (uc *ListHistoryUseCase) Execute(ctx context.Context, input ListHistoryInput) (*ListHistoryOutput, error) {
	if input.Kind != entity.TransactionKindIncome && input.Kind != entity.TransactionKindExpense {
		return nil, fmt.Errorf("unknown history kind %q", input.Kind)
	}

	records, err := uc.recordRepo.ListByOwner(ctx, input.OwnerID, input.Kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s history: %w", input.Kind, err)
	}

	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.TotalAmount)
	}
	return &ListHistoryOutput{Records: records, Total: total}, nil
}
