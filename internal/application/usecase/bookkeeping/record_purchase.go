package bookkeeping

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbiz/backend/internal/application/adapter"
	"github.com/smartbiz/backend/internal/domain/entity"
	domainerror "github.com/smartbiz/backend/internal/domain/error"
	"github.com/smartbiz/backend/internal/domain/valueobject"
)

// RecordPurchaseInput represents a restock of one item at a caller-supplied unit price.
type RecordPurchaseInput struct {
	OwnerID   uuid.UUID
	ItemID    uuid.UUID
	Date      string
	Time      string
	Quantity  int64
	UnitPrice decimal.Decimal
}

// RecordPurchaseOutput represents a committed purchase.
type RecordPurchaseOutput struct {
	Record *entity.TransactionRecord
	Item   *entity.Item
}

// RecordPurchaseUseCase restocks an item and books the cost as an expense.
// The item's stored selling price is left unchanged.
type RecordPurchaseUseCase struct {
	uow         adapter.UnitOfWork
	userRepo    adapter.UserRepository
	totalsCache adapter.TotalsCache
}

// NewRecordPurchaseUseCase creates a new RecordPurchaseUseCase instance.
// totalsCache may be nil.
func NewRecordPurchaseUseCase(
	uow adapter.UnitOfWork,
	userRepo adapter.UserRepository,
	totalsCache adapter.TotalsCache,
) *RecordPurchaseUseCase {
	return &RecordPurchaseUseCase{
		uow:         uow,
		userRepo:    userRepo,
		totalsCache: totalsCache,
	}
}

// Execute increments stock, appends the expense record and adds the purchase total to
// the owner's aggregate, all or nothing.
func (uc *RecordPurchaseUseCase) Execute(ctx context.Context, input RecordPurchaseInput) (*RecordPurchaseOutput, error) {
	if err := validateQuantity(input.Quantity); err != nil {
		return nil, err
	}
	if input.UnitPrice.IsNegative() {
		return nil, domainerror.NewBookkeepingError(
			domainerror.ErrCodeInvalidPrice,
			"unit price must not be negative",
			domainerror.ErrNegativePrice,
		)
	}
	if !valueobject.FitsPriceColumn(input.UnitPrice) {
		return nil, domainerror.NewBookkeepingError(
			domainerror.ErrCodeInvalidPrice,
			domainerror.ErrPriceOutOfRange.Error(),
			domainerror.ErrPriceOutOfRange,
		)
	}
	moment, err := parseMoment(input.Date, input.Time)
	if err != nil {
		return nil, err
	}
	if err := ensureOwner(ctx, uc.userRepo, input.OwnerID); err != nil {
		return nil, err
	}

	var output RecordPurchaseOutput
	err = uc.uow.Execute(ctx, func(repos adapter.TxRepositories) error {
		item, err := lockItem(ctx, repos.Items, input.ItemID, input.OwnerID)
		if err != nil {
			return err
		}

		updated, err := adjustStock(ctx, repos.Items, item, input.Quantity)
		if err != nil {
			return err
		}

		price := input.UnitPrice
		total := valueobject.LineTotal(input.Quantity, price)
		itemID := item.ID
		record := entity.NewExpenseRecord(input.OwnerID, &itemID, moment.Date, moment.Clock, input.Quantity, &price, total)

		if err := repos.Records.RecordExpense(ctx, record); err != nil {
			return fmt.Errorf("failed to record expense: %w", err)
		}
		if err := repos.Aggregates.ApplyExpense(ctx, input.OwnerID, total); err != nil {
			return fmt.Errorf("failed to update profit aggregate: %w", err)
		}

		output = RecordPurchaseOutput{Record: record, Item: updated}
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateTotals(ctx, uc.totalsCache, input.OwnerID)
	slog.Info("Purchase recorded",
		"ownerID", input.OwnerID,
		"itemID", input.ItemID,
		"quantity", input.Quantity,
		"total", output.Record.TotalAmount.String(),
	)

	return &output, nil
}
