package main

import (
	"bytes"
	"context"
	"database/sql"
	"flag"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/subcommands"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/smartbiz/backend/config"
	"github.com/smartbiz/backend/internal/application/adapter"
	"github.com/smartbiz/backend/internal/domain/entity"
	"github.com/smartbiz/backend/internal/infra/db"
	"github.com/smartbiz/backend/internal/infra/dependency"
	"github.com/smartbiz/backend/internal/integration/email"
	"github.com/smartbiz/backend/internal/integration/persistence"
)

type fixture struct {
	env    *environment
	out    *bytes.Buffer
	gdb    *gorm.DB
	sender *email.MockEmailSender
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", "file::memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}

	cfg := &config.Config{
		Auth:     config.AuthConfig{ResetTokenTTL: time.Hour, ResetTokenDigits: 6, BcryptCost: 4},
		Email:    config.EmailConfig{FromName: "SmartBiz", BatchSize: 10},
		Currency: config.CurrencyConfig{Code: "IDR"},
		Server:   config.ServerConfig{Environment: "test"},
	}

	f := &fixture{out: &bytes.Buffer{}, gdb: gdb, sender: email.NewMockEmailSender()}
	f.env = &environment{
		out: f.out,
		open: func() (*runtime, error) {
			database, err := db.Wrap(gdb, &cfg.Database)
			if err != nil {
				return nil, err
			}
			injector, err := dependency.NewInjector(cfg, gdb, nil, f.sender)
			if err != nil {
				return nil, err
			}
			return &runtime{database: database, injector: injector, currency: "IDR", close: func() {}}, nil
		},
	}
	return f
}

func (f *fixture) run(t *testing.T, cmd subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	return cmd.Execute(context.Background(), fs)
}

func (f *fixture) seedHistory(t *testing.T, owner uuid.UUID, income, expense int64) {
	t.Helper()
	ctx := context.Background()
	err := persistence.NewUnitOfWork(f.gdb).Execute(ctx, func(tx adapter.TxRepositories) error {
		day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		in := entity.NewIncomeRecord(owner, nil, day, "09:00:00", 1, nil, decimal.NewFromInt(income))
		if err := tx.Records.RecordIncome(ctx, in); err != nil {
			return err
		}
		out := entity.NewExpenseRecord(owner, nil, day, "10:00:00", 1, nil, decimal.NewFromInt(expense))
		return tx.Records.RecordExpense(ctx, out)
	})
	if err != nil {
		t.Fatalf("failed to seed history: %v", err)
	}
}

func (f *fixture) seedOwner(t *testing.T) uuid.UUID {
	t.Helper()
	user := entity.NewUser("toko", "toko@example.com", "hash")
	if err := persistence.NewUserRepository(f.gdb).Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user.ID
}

func TestMigrateThenRebuildAndTotals(t *testing.T) {
	f := newFixture(t)
	cmds := commands(f.env)

	if status := f.run(t, cmds[0]); status != subcommands.ExitSuccess {
		t.Fatalf("migrate failed: %s", f.out)
	}

	owner := f.seedOwner(t)
	f.seedHistory(t, owner, 5000, 2000)

	f.out.Reset()
	if status := f.run(t, &totalsCmd{env: f.env}, "-user", owner.String()); status != subcommands.ExitFailure {
		t.Errorf("expected totals to fail before any aggregate exists, got %v", status)
	}

	f.out.Reset()
	if status := f.run(t, &rebuildTotalsCmd{env: f.env}, "-user", owner.String()); status != subcommands.ExitSuccess {
		t.Fatalf("rebuild failed: %s", f.out)
	}
	if !strings.Contains(f.out.String(), "profit:") {
		t.Errorf("expected totals output, got %q", f.out)
	}

	f.out.Reset()
	if status := f.run(t, &totalsCmd{env: f.env}, "-user", owner.String()); status != subcommands.ExitSuccess {
		t.Fatalf("totals failed: %s", f.out)
	}
	if !strings.Contains(f.out.String(), "Rp3.000") {
		t.Errorf("expected formatted profit of 3000, got %q", f.out)
	}
}

func TestTotals_RequiresValidUser(t *testing.T) {
	f := newFixture(t)

	for _, args := range [][]string{{}, {"-user", "not-a-uuid"}} {
		f.out.Reset()
		if status := f.run(t, &totalsCmd{env: f.env}, args...); status != subcommands.ExitUsageError {
			t.Errorf("args %v: expected usage error, got %v", args, status)
		}
	}
}

func TestProcessEmails(t *testing.T) {
	f := newFixture(t)
	if status := f.run(t, &migrateCmd{env: f.env}); status != subcommands.ExitSuccess {
		t.Fatalf("migrate failed: %s", f.out)
	}

	svc := email.NewService(persistence.NewEmailQueueRepository(f.gdb), "SmartBiz")
	for _, to := range []string{"a@example.com", "b@example.com"} {
		err := svc.QueuePasswordResetEmail(context.Background(), adapter.QueuePasswordResetInput{
			UserEmail: to,
			Token:     "123456",
			ExpiresIn: "1 hour",
		})
		if err != nil {
			t.Fatalf("failed to queue: %v", err)
		}
	}

	f.out.Reset()
	if status := f.run(t, &processEmailsCmd{env: f.env}); status != subcommands.ExitSuccess {
		t.Fatalf("process-emails failed: %s", f.out)
	}
	if !strings.Contains(f.out.String(), "sent=2 retried=0 failed=0") {
		t.Errorf("unexpected output %q", f.out)
	}
	if !strings.Contains(f.out.String(), "queue: pending=0 sent=2 failed=0") {
		t.Errorf("expected queue summary, got %q", f.out)
	}
	if len(f.sender.Sent()) != 2 {
		t.Errorf("expected 2 emails, got %d", len(f.sender.Sent()))
	}
}
