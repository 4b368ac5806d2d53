package report_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/smartbiz/backend/internal/application/adapter"
	"github.com/smartbiz/backend/internal/application/usecase/report"
	"github.com/smartbiz/backend/internal/domain/entity"
	domainerror "github.com/smartbiz/backend/internal/domain/error"
	"github.com/smartbiz/backend/internal/integration/cache"
	"github.com/smartbiz/backend/internal/integration/persistence"
	"github.com/smartbiz/backend/internal/integration/persistence/model"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	sqlDB, err := sql.Open("sqlite", "file::memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}
	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestGetTotals_ReadsThroughCache(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	ownerID := uuid.New()

	mr := miniredis.RunT(t)
	totalsCache := cache.NewRedisTotalsCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)
	aggregates := persistence.NewProfitAggregateRepository(db)
	uc := report.NewGetTotalsUseCase(aggregates, totalsCache)

	_, err := uc.Execute(ctx, report.GetTotalsInput{OwnerID: ownerID})
	var bkErr *domainerror.BookkeepingError
	if !errors.As(err, &bkErr) || bkErr.Code != domainerror.ErrCodeTotalsNotFound {
		t.Fatalf("expected totals not found, got %v", err)
	}

	if err := aggregates.ApplyIncome(ctx, ownerID, decimal.NewFromInt(3000)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := uc.Execute(ctx, report.GetTotalsInput{OwnerID: ownerID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Cached {
		t.Error("expected first read to come from storage")
	}

	second, err := uc.Execute(ctx, report.GetTotalsInput{OwnerID: ownerID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.Cached || !second.Aggregate.TotalIncome.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("expected cached totals of 3000, got %+v", second)
	}

	// Redis outage falls back to storage
	mr.Close()
	third, err := uc.Execute(ctx, report.GetTotalsInput{OwnerID: ownerID})
	if err != nil {
		t.Fatalf("expected storage fallback, got %v", err)
	}
	if third.Cached {
		t.Error("expected storage read while cache is down")
	}
}

// saleDuringRead commits a sale right after the totals were loaded, once.
type saleDuringRead struct {
	adapter.ProfitAggregateRepository
	cache adapter.TotalsCache
	done  bool
}

func (r *saleDuringRead) GetTotals(ctx context.Context, ownerID uuid.UUID) (*entity.ProfitAggregate, error) {
	loaded, err := r.ProfitAggregateRepository.GetTotals(ctx, ownerID)
	if err != nil || r.done {
		return loaded, err
	}
	r.done = true
	if err := r.ProfitAggregateRepository.ApplyIncome(ctx, ownerID, decimal.NewFromInt(500)); err != nil {
		return nil, err
	}
	if err := r.cache.Invalidate(ctx, ownerID); err != nil {
		return nil, err
	}
	return loaded, nil
}

func TestGetTotals_DoesNotCacheTotalsInvalidatedDuringRead(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	ownerID := uuid.New()

	mr := miniredis.RunT(t)
	totalsCache := cache.NewRedisTotalsCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)
	aggregates := persistence.NewProfitAggregateRepository(db)
	if err := aggregates.ApplyIncome(ctx, ownerID, decimal.NewFromInt(3000)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uc := report.NewGetTotalsUseCase(&saleDuringRead{ProfitAggregateRepository: aggregates, cache: totalsCache}, totalsCache)

	first, err := uc.Execute(ctx, report.GetTotalsInput{OwnerID: ownerID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.Aggregate.TotalIncome.Equal(decimal.NewFromInt(3000)) {
		t.Fatalf("expected the pre-sale read of 3000, got %s", first.Aggregate.TotalIncome)
	}

	second, err := uc.Execute(ctx, report.GetTotalsInput{OwnerID: ownerID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Cached {
		t.Error("expected the stale read not to be cached")
	}
	if !second.Aggregate.TotalIncome.Equal(decimal.NewFromInt(3500)) {
		t.Errorf("expected fresh income 3500, got %s", second.Aggregate.TotalIncome)
	}

	third, err := uc.Execute(ctx, report.GetTotalsInput{OwnerID: ownerID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !third.Cached || !third.Aggregate.TotalIncome.Equal(decimal.NewFromInt(3500)) {
		t.Errorf("expected cached income 3500, got %+v", third)
	}
}

func TestRebuildTotals_ReproducesHistory(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	ownerID := uuid.New()

	records := persistence.NewTransactionRecordRepository(db)
	aggregates := persistence.NewProfitAggregateRepository(db)
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	_ = records.RecordIncome(ctx, entity.NewIncomeRecord(ownerID, nil, date, "09:00:00", 3, nil, decimal.NewFromInt(4500)))
	_ = records.RecordExpense(ctx, entity.NewExpenseRecord(ownerID, nil, date, "10:00:00", 2, nil, decimal.NewFromInt(1200)))
	// drifted aggregate
	_ = aggregates.ApplyIncome(ctx, ownerID, decimal.NewFromInt(99))

	uc := report.NewRebuildTotalsUseCase(persistence.NewUnitOfWork(db), nil)
	out, err := uc.Execute(ctx, report.RebuildTotalsInput{OwnerID: ownerID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Drifted() {
		t.Error("expected drift to be reported")
	}
	if !out.Aggregate.TotalProfit.Equal(decimal.NewFromInt(3300)) {
		t.Errorf("expected profit 3300, got %s", out.Aggregate.TotalProfit)
	}

	stored, err := aggregates.GetTotals(ctx, ownerID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stored.TotalIncome.Equal(decimal.NewFromInt(4500)) || !stored.TotalExpense.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("unexpected stored totals %+v", stored)
	}

	again, err := uc.Execute(ctx, report.RebuildTotalsInput{OwnerID: ownerID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.Drifted() {
		t.Error("expected second rebuild to be a no-op")
	}
}

func TestListHistory(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	ownerID := uuid.New()
	records := persistence.NewTransactionRecordRepository(db)
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	_ = records.RecordIncome(ctx, entity.NewIncomeRecord(ownerID, nil, date, "09:00:00", 1, nil, decimal.NewFromInt(1000)))
	_ = records.RecordIncome(ctx, entity.NewIncomeRecord(ownerID, nil, date, "11:00:00", 2, nil, decimal.NewFromInt(2000)))

	uc := report.NewListHistoryUseCase(records)
	out, err := uc.Execute(ctx, report.ListHistoryInput{OwnerID: ownerID, Kind: entity.TransactionKindIncome})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Records) != 2 || !out.Total.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("unexpected history %d records, total %s", len(out.Records), out.Total)
	}

	expenses, err := uc.Execute(ctx, report.ListHistoryInput{OwnerID: ownerID, Kind: entity.TransactionKindExpense})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(expenses.Records) != 0 || !expenses.Total.IsZero() {
		t.Error("expected empty expense history")
	}

	if _, err := uc.Execute(ctx, report.ListHistoryInput{OwnerID: ownerID, Kind: "refund"}); err == nil {
		t.Error("expected unknown kind to fail")
	}
}
