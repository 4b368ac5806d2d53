package bookkeeping

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/smartbiz/backend/internal/application/adapter"
	"github.com/smartbiz/backend/internal/domain/entity"
	"github.com/smartbiz/backend/internal/domain/valueobject"
)

// RecordSaleInput represents a sale of one item.
type RecordSaleInput struct {
	OwnerID  uuid.UUID
	ItemID   uuid.UUID
	Date     string
	Time     string
	Quantity int64
}

// RecordSaleOutput represents a committed sale.
type RecordSaleOutput struct {
	Record *entity.TransactionRecord
	Item   *entity.Item
}

// RecordSaleUseCase sells stock at the item's stored unit price.
type RecordSaleUseCase struct {
	uow         adapter.UnitOfWork
	userRepo    adapter.UserRepository
	totalsCache adapter.TotalsCache
}

// NewRecordSaleUseCase creates a new RecordSaleUseCase instance.
// totalsCache may be nil.
func NewRecordSaleUseCase(
	uow adapter.UnitOfWork,
	userRepo adapter.UserRepository,
	totalsCache adapter.TotalsCache,
) *RecordSaleUseCase {
	return &RecordSaleUseCase{
		uow:         uow,
		userRepo:    userRepo,
		totalsCache: totalsCache,
	}
}

// Execute decrements stock, appends the income record and adds the sale total to the
// owner's aggregate, all or nothing.
func (uc *RecordSaleUseCase) Execute(ctx context.Context, input RecordSaleInput) (*RecordSaleOutput, error) {
	if err := validateQuantity(input.Quantity); err != nil {
		return nil, err
	}
	moment, err := parseMoment(input.Date, input.Time)
	if err != nil {
		return nil, err
	}
	if err := ensureOwner(ctx, uc.userRepo, input.OwnerID); err != nil {
		return nil, err
	}

	var output RecordSaleOutput
	err = uc.uow.Execute(ctx, func(repos adapter.TxRepositories) error {
		item, err := lockItem(ctx, repos.Items, input.ItemID, input.OwnerID)
		if err != nil {
			return err
		}
		if !item.CanFulfil(input.Quantity) {
			return stockTooLow(item, input.Quantity)
		}

		updated, err := adjustStock(ctx, repos.Items, item, -input.Quantity)
		if err != nil {
			return err
		}

		price := item.UnitPrice
		total := valueobject.LineTotal(input.Quantity, price)
		itemID := item.ID
		record := entity.NewIncomeRecord(input.OwnerID, &itemID, moment.Date, moment.Clock, input.Quantity, &price, total)

		if err := repos.Records.RecordIncome(ctx, record); err != nil {
			return fmt.Errorf("failed to record income: %w", err)
		}
		if err := repos.Aggregates.ApplyIncome(ctx, input.OwnerID, total); err != nil {
			return fmt.Errorf("failed to update profit aggregate: %w", err)
		}

		output = RecordSaleOutput{Record: record, Item: updated}
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateTotals(ctx, uc.totalsCache, input.OwnerID)
	slog.Info("Sale recorded",
		"ownerID", input.OwnerID,
		"itemID", input.ItemID,
		"quantity", input.Quantity,
		"total", output.Record.TotalAmount.String(),
	)

	return &output, nil
}
