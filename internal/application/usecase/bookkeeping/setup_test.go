package bookkeeping_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/smartbiz/backend/internal/application/adapter"
	"github.com/smartbiz/backend/internal/domain/entity"
	"github.com/smartbiz/backend/internal/integration/persistence"
	"github.com/smartbiz/backend/internal/integration/persistence/model"
)

type fixture struct {
	db         *gorm.DB
	users      adapter.UserRepository
	items      adapter.ItemRepository
	records    adapter.TransactionRecordRepository
	aggregates adapter.ProfitAggregateRepository
	uow        adapter.UnitOfWork
	cache      *spyCache
	owner      *entity.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", "file::memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return fixtureOn(t, sqlDB)
}

// newPooledFixture opens a file database shared by several connections so
// transactions can interleave.
func newPooledFixture(t *testing.T, conns int) *fixture {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "smartbiz.db") +
		"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB.SetMaxOpenConns(conns)
	return fixtureOn(t, sqlDB)
}

func fixtureOn(t *testing.T, sqlDB *sql.DB) *fixture {
	t.Helper()
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}
	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	f := &fixture{
		db:         db,
		users:      persistence.NewUserRepository(db),
		items:      persistence.NewItemRepository(db),
		records:    persistence.NewTransactionRecordRepository(db),
		aggregates: persistence.NewProfitAggregateRepository(db),
		uow:        persistence.NewUnitOfWork(db),
		cache:      &spyCache{},
	}

	f.owner = entity.NewUser("budi", "budi@example.com", "hash")
	if err := f.users.Create(context.Background(), f.owner); err != nil {
		t.Fatalf("failed to seed owner: %v", err)
	}
	return f
}

func (f *fixture) addItem(t *testing.T, name string, price string, quantity int64) *entity.Item {
	t.Helper()
	item := entity.NewItem(f.owner.ID, name, decimal.RequireFromString(price), quantity)
	if err := f.items.Create(context.Background(), item); err != nil {
		t.Fatalf("failed to seed item: %v", err)
	}
	return item
}

func (f *fixture) quantityOf(t *testing.T, itemID uuid.UUID) int64 {
	t.Helper()
	item, err := f.items.FindByIDAndOwner(context.Background(), itemID, f.owner.ID)
	if err != nil {
		t.Fatalf("failed to reload item: %v", err)
	}
	return item.QuantityOnHand
}

func (f *fixture) historyLen(t *testing.T, kind entity.TransactionKind) int {
	t.Helper()
	records, err := f.records.ListByOwner(context.Background(), f.owner.ID, kind)
	if err != nil {
		t.Fatalf("failed to list history: %v", err)
	}
	return len(records)
}

// spyCache records invalidations.
type spyCache struct {
	invalidated []uuid.UUID
}

func (c *spyCache) Get(context.Context, uuid.UUID) (*entity.ProfitAggregate, error) { return nil, nil }
func (c *spyCache) Version(context.Context, uuid.UUID) (int64, error)               { return 0, nil }
func (c *spyCache) Ping(context.Context) error                                      { return nil }
func (c *spyCache) SetIfVersion(context.Context, *entity.ProfitAggregate, int64) (bool, error) {
	return true, nil
}
func (c *spyCache) Invalidate(_ context.Context, ownerID uuid.UUID) error {
	c.invalidated = append(c.invalidated, ownerID)
	return nil
}

var errStorage = errors.New("disk full")

// failingAggregates breaks the last step of the unit of work.
type failingAggregates struct {
	adapter.ProfitAggregateRepository
}

func (failingAggregates) ApplyIncome(context.Context, uuid.UUID, decimal.Decimal) error {
	return errStorage
}

func (failingAggregates) ApplyExpense(context.Context, uuid.UUID, decimal.Decimal) error {
	return errStorage
}

// failingRecords breaks the history append.
type failingRecords struct {
	adapter.TransactionRecordRepository
}

func (failingRecords) RecordIncome(context.Context, *entity.TransactionRecord) error {
	return errStorage
}

func (failingRecords) RecordExpense(context.Context, *entity.TransactionRecord) error {
	return errStorage
}

// sabotagedUnitOfWork swaps some repositories of the real transaction for failing ones.
type sabotagedUnitOfWork struct {
	inner      adapter.UnitOfWork
	records    bool
	aggregates bool
}

func (u sabotagedUnitOfWork) Execute(ctx context.Context, fn func(repos adapter.TxRepositories) error) error {
	return u.inner.Execute(ctx, func(repos adapter.TxRepositories) error {
		if u.records {
			repos.Records = failingRecords{repos.Records}
		}
		if u.aggregates {
			repos.Aggregates = failingAggregates{repos.Aggregates}
		}
		return fn(repos)
	})
}
