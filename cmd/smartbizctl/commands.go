package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/subcommands"
	"github.com/google/uuid"

	"github.com/smartbiz/backend/config"
	"github.com/smartbiz/backend/internal/application/usecase/report"
	"github.com/smartbiz/backend/internal/domain/entity"
	"github.com/smartbiz/backend/internal/domain/valueobject"
	"github.com/smartbiz/backend/internal/infra/db"
	"github.com/smartbiz/backend/internal/infra/dependency"
	"github.com/smartbiz/backend/internal/integration/email"
)

// runtime is what a command needs once connected.
type runtime struct {
	database *db.Database
	injector *dependency.Injector
	currency string
	close    func()
}

type environment struct {
	open func() (*runtime, error)
	out  io.Writer
}

func openRuntime(cfg *config.Config) func() (*runtime, error) {
	return func() (*runtime, error) {
		database, err := db.Open(&cfg.Database)
		if err != nil {
			return nil, err
		}

		redisClient, err := db.OpenRedis(&cfg.Redis)
		if err != nil {
			slog.Warn("Totals cache unavailable", "error", err)
			redisClient = nil
		}

		injector, err := dependency.NewInjector(cfg, database.DB(), redisClient, nil)
		if err != nil {
			_ = database.Close()
			return nil, err
		}

		return &runtime{
			database: database,
			injector: injector,
			currency: cfg.Currency.Code,
			close: func() {
				if redisClient != nil {
					_ = redisClient.Close()
				}
				_ = database.Close()
			},
		}, nil
	}
}

func commands(env *environment) []subcommands.Command {
	return []subcommands.Command{
		&migrateCmd{env: env},
		&totalsCmd{env: env},
		&rebuildTotalsCmd{env: env},
		&processEmailsCmd{env: env},
	}
}

// withRuntime opens the runtime, runs fn and maps its error to an exit status.
func (e *environment) withRuntime(fn func(rt *runtime) error) subcommands.ExitStatus {
	rt, err := e.open()
	if err != nil {
		fmt.Fprintln(e.out, "error:", err)
		return subcommands.ExitFailure
	}
	defer rt.close()

	if err := fn(rt); err != nil {
		fmt.Fprintln(e.out, "error:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func parseUser(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, errors.New("-user is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid -user %q: %w", raw, err)
	}
	return id, nil
}

type migrateCmd struct {
	env *environment
}

func (*migrateCmd) Name() string             { return "migrate" }
func (*migrateCmd) Synopsis() string         { return "create or update the database schema" }
func (*migrateCmd) Usage() string            { return "smartbizctl migrate\n" }
func (*migrateCmd) SetFlags(_ *flag.FlagSet) {}

func (c *migrateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.withRuntime(func(rt *runtime) error {
		if err := rt.database.Migrate(); err != nil {
			return err
		}
		fmt.Fprintln(c.env.out, "schema up to date")
		return nil
	})
}

type totalsCmd struct {
	env  *environment
	user string
}

func (*totalsCmd) Name() string     { return "totals" }
func (*totalsCmd) Synopsis() string { return "print the running totals of one owner" }
func (*totalsCmd) Usage() string {
	return `smartbizctl totals -user <id>

  Prints total income, total expense and profit as stored in the aggregate.
`
}

func (c *totalsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "Owner ID.")
}

func (c *totalsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ownerID, err := parseUser(c.user)
	if err != nil {
		fmt.Fprintln(c.env.out, "error:", err)
		return subcommands.ExitUsageError
	}

	return c.env.withRuntime(func(rt *runtime) error {
		out, err := rt.injector.GetTotals.Execute(ctx, report.GetTotalsInput{OwnerID: ownerID})
		if err != nil {
			return err
		}
		printTotals(c.env.out, out.Aggregate, rt.currency)
		return nil
	})
}

type rebuildTotalsCmd struct {
	env  *environment
	user string
}

func (*rebuildTotalsCmd) Name() string { return "rebuild-totals" }
func (*rebuildTotalsCmd) Synopsis() string {
	return "recompute an owner's totals from the history tables"
}
func (*rebuildTotalsCmd) Usage() string {
	return `smartbizctl rebuild-totals -user <id>

  Sums the income and expense history of the owner and overwrites the
  aggregate row with the result. Prints the totals before and after.
`
}

func (c *rebuildTotalsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "Owner ID.")
}

func (c *rebuildTotalsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ownerID, err := parseUser(c.user)
	if err != nil {
		fmt.Fprintln(c.env.out, "error:", err)
		return subcommands.ExitUsageError
	}

	return c.env.withRuntime(func(rt *runtime) error {
		out, err := rt.injector.RebuildTotals.Execute(ctx, report.RebuildTotalsInput{OwnerID: ownerID})
		if err != nil {
			return err
		}
		if out.Previous != nil {
			fmt.Fprintln(c.env.out, "before:")
			printTotals(c.env.out, out.Previous, rt.currency)
		}
		fmt.Fprintln(c.env.out, "after:")
		printTotals(c.env.out, out.Aggregate, rt.currency)
		if out.Drifted() {
			fmt.Fprintln(c.env.out, "aggregate had drifted from history and was repaired")
		}
		return nil
	})
}

type processEmailsCmd struct {
	env *environment
}

func (*processEmailsCmd) Name() string             { return "process-emails" }
func (*processEmailsCmd) Synopsis() string         { return "send every due email in the queue once" }
func (*processEmailsCmd) Usage() string            { return "smartbizctl process-emails\n" }
func (*processEmailsCmd) SetFlags(_ *flag.FlagSet) {}

func (c *processEmailsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.withRuntime(func(rt *runtime) error {
		var total email.BatchResult
		// Retried jobs are rescheduled into the future, so the loop ends.
		for {
			res := rt.injector.EmailWorker.ProcessNow(ctx)
			if res.Total() == 0 {
				break
			}
			total.Sent += res.Sent
			total.Retried += res.Retried
			total.Failed += res.Failed
		}
		fmt.Fprintf(c.env.out, "sent=%d retried=%d failed=%d\n", total.Sent, total.Retried, total.Failed)

		counts, err := rt.injector.EmailQueue.CountByStatus(ctx)
		if err != nil {
			return fmt.Errorf("count email queue: %w", err)
		}
		fmt.Fprintf(c.env.out, "queue: pending=%d sent=%d failed=%d\n",
			counts[entity.EmailStatusPending], counts[entity.EmailStatusSent], counts[entity.EmailStatusFailed])
		return nil
	})
}

func printTotals(w io.Writer, agg *entity.ProfitAggregate, currency string) {
	fmt.Fprintf(w, "owner:   %s\n", agg.OwnerID)
	fmt.Fprintf(w, "income:  %s\n", valueobject.FormatAmount(agg.TotalIncome, currency))
	fmt.Fprintf(w, "expense: %s\n", valueobject.FormatAmount(agg.TotalExpense, currency))
	fmt.Fprintf(w, "profit:  %s\n", valueobject.FormatAmount(agg.TotalProfit, currency))
}
