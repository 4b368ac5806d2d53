package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/smartbiz/backend/internal/application/adapter"
	"github.com/smartbiz/backend/internal/domain/entity"
)

// RebuildTotalsInput names the owner whose aggregate is recomputed.
type RebuildTotalsInput struct {
	OwnerID uuid.UUID
}

// RebuildTotalsOutput carries the aggregate before and after the rebuild.
type RebuildTotalsOutput struct {
	Previous  *entity.ProfitAggregate
	Aggregate *entity.ProfitAggregate
}

// Drifted reports whether the rebuild changed the stored totals.
func (o *RebuildTotalsOutput) Drifted() bool {
	if o.Previous == nil {
		return !o.Aggregate.TotalIncome.IsZero() || !o.Aggregate.TotalExpense.IsZero()
	}
	return !o.Previous.TotalIncome.Equal(o.Aggregate.TotalIncome) ||
		!o.Previous.TotalExpense.Equal(o.Aggregate.TotalExpense) ||
		!o.Previous.TotalProfit.Equal(o.Aggregate.TotalProfit)
}

// RebuildTotalsUseCase overwrites an owner's aggregate with the sums of their history.
type RebuildTotalsUseCase struct {
	uow         adapter.UnitOfWork
	totalsCache adapter.TotalsCache
}

// NewRebuildTotalsUseCase creates a new RebuildTotalsUseCase instance.
// totalsCache may be nil.
func NewRebuildTotalsUseCase(uow adapter.UnitOfWork, totalsCache adapter.TotalsCache) *RebuildTotalsUseCase {
	return &RebuildTotalsUseCase{
		uow:         uow,
		totalsCache: totalsCache,
	}
}

// Execute sums both history tables and rewrites the aggregate in one transaction.
func (uc *RebuildTotalsUseCase) Execute(ctx context.Context, input RebuildTotalsInput) (*RebuildTotalsOutput, error) {
	var output RebuildTotalsOutput
	err := uc.uow.Execute(ctx, func(repos adapter.TxRepositories) error {
		previous, err := repos.Aggregates.GetTotals(ctx, input.OwnerID)
		if err == nil {
			output.Previous = previous
		}

		sums, err := repos.Records.SumTotals(ctx, input.OwnerID)
		if err != nil {
			return fmt.Errorf("failed to sum history: %w", err)
		}

		aggregate, err := repos.Aggregates.Rebuild(ctx, input.OwnerID, sums.IncomeTotal, sums.ExpenseTotal)
		if err != nil {
			return fmt.Errorf("failed to rebuild aggregate: %w", err)
		}
		output.Aggregate = aggregate
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.totalsCache != nil {
		if err := uc.totalsCache.Invalidate(ctx, input.OwnerID); err != nil {
			slog.Warn("Failed to invalidate cached totals", "error", err, "ownerID", input.OwnerID)
		}
	}

	slog.Info("Profit aggregate rebuilt",
		"ownerID", input.OwnerID,
		"totalIncome", output.Aggregate.TotalIncome.String(),
		"totalExpense", output.Aggregate.TotalExpense.String(),
		"drifted", output.Drifted(),
	)

	return &output, nil
}
