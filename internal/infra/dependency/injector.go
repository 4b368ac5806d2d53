// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/smartbiz/backend/config"
	"github.com/smartbiz/backend/internal/application/adapter"
	"github.com/smartbiz/backend/internal/application/usecase/auth"
	"github.com/smartbiz/backend/internal/application/usecase/bookkeeping"
	"github.com/smartbiz/backend/internal/application/usecase/inventory"
	"github.com/smartbiz/backend/internal/application/usecase/report"
	"github.com/smartbiz/backend/internal/infra/server/router"
	"github.com/smartbiz/backend/internal/integration/adapters"
	"github.com/smartbiz/backend/internal/integration/cache"
	"github.com/smartbiz/backend/internal/integration/email"
	"github.com/smartbiz/backend/internal/integration/email/templates"
	"github.com/smartbiz/backend/internal/integration/entrypoint/controller"
	"github.com/smartbiz/backend/internal/integration/entrypoint/middleware"
	"github.com/smartbiz/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	RateLimiter *middleware.RateLimiter
	EmailWorker *email.Worker
	EmailQueue  adapter.EmailQueueRepository

	GetTotals     *report.GetTotalsUseCase
	RebuildTotals *report.RebuildTotalsUseCase
}

// NewInjector wires repositories, use cases and controllers.
// redisClient may be nil, in which case totals are always read from storage.
// sender may be nil, in which case one is chosen from the email configuration.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, sender adapter.EmailSender) (*Injector, error) {
	// Repositories
	userRepo := persistence.NewUserRepository(db)
	resetTokenRepo := persistence.NewResetTokenRepository(db)
	itemRepo := persistence.NewItemRepository(db)
	recordRepo := persistence.NewTransactionRecordRepository(db)
	aggregateRepo := persistence.NewProfitAggregateRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)
	uow := persistence.NewUnitOfWork(db)

	var totalsCache adapter.TotalsCache
	if redisClient != nil {
		totalsCache = cache.NewRedisTotalsCache(redisClient, cfg.Redis.TTL)
	}

	// Services
	passwordService := adapters.NewPasswordService(cfg.Auth.BcryptCost)
	credentialGenerator := adapters.NewCredentialGenerator()
	emailService := email.NewService(emailQueueRepo, cfg.Email.FromName)

	if sender == nil {
		sender = newEmailSender(cfg.Email)
	}
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}
	emailWorker := email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
		PollInterval:  cfg.Email.PollInterval,
		BatchSize:     cfg.Email.BatchSize,
		RetentionDays: cfg.Email.RetentionDays,
	})

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService)
	forgotPasswordUseCase := auth.NewForgotPasswordUseCase(
		userRepo,
		resetTokenRepo,
		credentialGenerator,
		emailService,
		cfg.Auth.ResetTokenTTL,
		cfg.Auth.ResetTokenDigits,
	)
	resetPasswordUseCase := auth.NewResetPasswordUseCase(resetTokenRepo, passwordService)

	// Inventory use cases
	addItemUseCase := inventory.NewAddItemUseCase(itemRepo, userRepo)
	getItemUseCase := inventory.NewGetItemUseCase(itemRepo)
	listItemsUseCase := inventory.NewListItemsUseCase(itemRepo)
	editItemUseCase := inventory.NewEditItemUseCase(itemRepo)
	deleteItemUseCase := inventory.NewDeleteItemUseCase(itemRepo)

	// Bookkeeping use cases
	recordSaleUseCase := bookkeeping.NewRecordSaleUseCase(uow, userRepo, totalsCache)
	recordBatchSaleUseCase := bookkeeping.NewRecordBatchSaleUseCase(uow, userRepo, totalsCache)
	recordPurchaseUseCase := bookkeeping.NewRecordPurchaseUseCase(uow, userRepo, totalsCache)

	// Report use cases
	getTotalsUseCase := report.NewGetTotalsUseCase(aggregateRepo, totalsCache)
	listHistoryUseCase := report.NewListHistoryUseCase(recordRepo)
	rebuildTotalsUseCase := report.NewRebuildTotalsUseCase(uow, totalsCache)

	// Controllers
	var cacheCheck controller.HealthChecker
	if totalsCache != nil {
		cacheCheck = totalsCache.Ping
	}
	healthController := controller.NewHealthController(func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}, cacheCheck)

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		forgotPasswordUseCase,
		resetPasswordUseCase,
	)
	inventoryController := controller.NewInventoryController(
		addItemUseCase,
		getItemUseCase,
		listItemsUseCase,
		editItemUseCase,
		deleteItemUseCase,
		cfg.Currency.Code,
	)
	bookkeepingController := controller.NewBookkeepingController(
		recordSaleUseCase,
		recordBatchSaleUseCase,
		recordPurchaseUseCase,
	)
	reportController := controller.NewReportController(getTotalsUseCase, listHistoryUseCase, cfg.Currency.Code)

	// Use higher rate limits for test environments to prevent flaky tests
	var rateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "test" {
		rateLimiter = middleware.NewRateLimiter(1000, cfg.Auth.LoginWindow)
	} else {
		rateLimiter = middleware.NewRateLimiter(cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow)
	}

	r := router.NewRouter(
		healthController,
		authController,
		inventoryController,
		bookkeepingController,
		reportController,
		rateLimiter,
		cfg.Server.AllowedOrigins,
	)

	return &Injector{
		Config:        cfg,
		DB:            db,
		Router:        r,
		RateLimiter:   rateLimiter,
		EmailWorker:   emailWorker,
		EmailQueue:    emailQueueRepo,
		GetTotals:     getTotalsUseCase,
		RebuildTotals: rebuildTotalsUseCase,
	}, nil
}

func newEmailSender(cfg config.EmailConfig) adapter.EmailSender {
	if cfg.ResendAPIKey == "" {
		slog.Warn("RESEND_API_KEY not set, emails will be logged instead of delivered")
		return email.NewMockEmailSender()
	}
	return email.NewResendClient(cfg.ResendAPIKey, cfg.FromName, cfg.FromEmail)
}
