package bookkeeping

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbiz/backend/internal/application/adapter"
	"github.com/smartbiz/backend/internal/domain/entity"
	domainerror "github.com/smartbiz/backend/internal/domain/error"
	"github.com/smartbiz/backend/internal/domain/valueobject"
)

// SaleLine is one item of a multi-item sale.
type SaleLine struct {
	ItemID   uuid.UUID
	Quantity int64
}

// RecordBatchSaleInput represents a sale spanning several items.
type RecordBatchSaleInput struct {
	OwnerID uuid.UUID
	Date    string
	Time    string
	Lines   []SaleLine
}

// RecordBatchSaleOutput represents a committed multi-item sale.
type RecordBatchSaleOutput struct {
	Record *entity.TransactionRecord
	Items  []*entity.Item
}

// RecordBatchSaleUseCase sells several items as one income record.
type RecordBatchSaleUseCase struct {
	uow         adapter.UnitOfWork
	userRepo    adapter.UserRepository
	totalsCache adapter.TotalsCache
}

// NewRecordBatchSaleUseCase creates a new RecordBatchSaleUseCase instance.
// totalsCache may be nil.
func NewRecordBatchSaleUseCase(
	uow adapter.UnitOfWork,
	userRepo adapter.UserRepository,
	totalsCache adapter.TotalsCache,
) *RecordBatchSaleUseCase {
	return &RecordBatchSaleUseCase{
		uow:         uow,
		userRepo:    userRepo,
		totalsCache: totalsCache,
	}
}

// Execute locks and decrements every line, then appends a single income record whose
// quantity is the sum of units and whose total is the sum of line totals.
// One short line aborts the whole sale.
func (uc *RecordBatchSaleUseCase) Execute(ctx context.Context, input RecordBatchSaleInput) (*RecordBatchSaleOutput, error) {
	lines, err := mergeLines(input.Lines)
	if err != nil {
		return nil, err
	}
	moment, err := parseMoment(input.Date, input.Time)
	if err != nil {
		return nil, err
	}
	if err := ensureOwner(ctx, uc.userRepo, input.OwnerID); err != nil {
		return nil, err
	}

	var output RecordBatchSaleOutput
	err = uc.uow.Execute(ctx, func(repos adapter.TxRepositories) error {
		total := decimal.Zero
		var units int64
		updatedItems := make([]*entity.Item, 0, len(lines))

		for _, line := range lines {
			item, err := lockItem(ctx, repos.Items, line.ItemID, input.OwnerID)
			if err != nil {
				return err
			}
			if !item.CanFulfil(line.Quantity) {
				return stockTooLow(item, line.Quantity)
			}
			updated, err := adjustStock(ctx, repos.Items, item, -line.Quantity)
			if err != nil {
				return err
			}
			if line.Quantity > math.MaxInt64-units {
				return quantityOverflow()
			}
			total = total.Add(valueobject.LineTotal(line.Quantity, item.UnitPrice))
			units += line.Quantity
			updatedItems = append(updatedItems, updated)
		}

		record := entity.NewIncomeRecord(input.OwnerID, nil, moment.Date, moment.Clock, units, nil, total)
		if err := repos.Records.RecordIncome(ctx, record); err != nil {
			return fmt.Errorf("failed to record income: %w", err)
		}
		if err := repos.Aggregates.ApplyIncome(ctx, input.OwnerID, total); err != nil {
			return fmt.Errorf("failed to update profit aggregate: %w", err)
		}

		output = RecordBatchSaleOutput{Record: record, Items: updatedItems}
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateTotals(ctx, uc.totalsCache, input.OwnerID)
	slog.Info("Multi-item sale recorded",
		"ownerID", input.OwnerID,
		"lines", len(lines),
		"units", output.Record.Quantity,
		"total", output.Record.TotalAmount.String(),
	)

	return &output, nil
}

// mergeLines validates the lines, folds repeated items together and orders them by
// item ID so concurrent sales lock rows in the same order.
func mergeLines(lines []SaleLine) ([]SaleLine, error) {
	if len(lines) == 0 {
		return nil, domainerror.NewBookkeepingError(
			domainerror.ErrCodeEmptySale,
			"sale must contain at least one line",
			domainerror.ErrEmptySale,
		)
	}

	byItem := make(map[uuid.UUID]int64, len(lines))
	for _, line := range lines {
		if err := validateQuantity(line.Quantity); err != nil {
			return nil, err
		}
		if line.Quantity > math.MaxInt64-byItem[line.ItemID] {
			return nil, quantityOverflow()
		}
		byItem[line.ItemID] += line.Quantity
	}

	merged := make([]SaleLine, 0, len(byItem))
	for id, qty := range byItem {
		merged = append(merged, SaleLine{ItemID: id, Quantity: qty})
	}
	sort.Slice(merged, func(i, j int) bool {
		return bytes.Compare(merged[i].ItemID[:], merged[j].ItemID[:]) < 0
	})
	return merged, nil
}

func quantityOverflow() error {
	return domainerror.NewBookkeepingError(
		domainerror.ErrCodeInvalidQuantity,
		"combined quantity is too large",
		domainerror.ErrInvalidTransactionQuantity,
	)
}
