// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartbiz/backend/config"
	"github.com/smartbiz/backend/internal/infra/dependency"
	"github.com/smartbiz/backend/internal/integration/email"
	"github.com/smartbiz/backend/internal/integration/persistence/model"
	"github.com/smartbiz/backend/test/integration/mock"
)

// suite holds the resources shared by every scenario.
type suite struct {
	server   *httptest.Server
	injector *dependency.Injector
	db       *mock.Db
	redis    *mock.Redis
	sender   *email.MockEmailSender
}

var shared *suite

// testContext holds the state of a single scenario.
type testContext struct {
	*suite

	client      *http.Client
	headers     map[string]string
	response    *response
	currentUser uuid.UUID
	users       map[string]uuid.UUID
	items       map[string]uuid.UUID
	resetCode   string
	lastBatch   email.BatchResult
}

type response struct {
	status int
	body   any
	raw    string
}

// InitializeTestSuite builds the application once against in-memory storage.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.Auth.BcryptCost = bcrypt.MinCost

		database := mock.NewDb("smartbiz", map[string]any{
			"login":            &model.UserModel{},
			"reset_tokens":     &model.ResetTokenModel{},
			"items":            &model.ItemModel{},
			"income_history":   &model.IncomeHistoryModel{},
			"expense_history":  &model.ExpenseHistoryModel{},
			"profit_aggregate": &model.ProfitAggregateModel{},
			"email_queue":      &model.EmailQueueModel{},
		})
		cache := mock.NewRedis()
		sender := email.NewMockEmailSender()

		injector, err := dependency.NewInjector(cfg, database.DbConn, cache.Client, sender)
		if err != nil {
			panic(fmt.Sprintf("failed to build application: %s", err.Error()))
		}

		shared = &suite{
			server:   httptest.NewServer(injector.Router.Setup(cfg.Server.Environment)),
			injector: injector,
			db:       database,
			redis:    cache,
			sender:   sender,
		}
	})

	ctx.AfterSuite(func() {
		if shared != nil {
			shared.server.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Setup steps
	ctx.Given(`^a user exists with username "([^"]*)", email "([^"]*)" and password "([^"]*)"$`, test.aUserExists)
	ctx.Given(`^the user "([^"]*)" has an item "([^"]*)" priced "([^"]*)" with (\d+) units in stock$`, test.theUserHasAnItem)
	ctx.Given(`^a password reset code "([^"]*)" exists for "([^"]*)"$`, test.aPasswordResetCodeExistsFor)
	ctx.Given(`^an expired password reset code "([^"]*)" exists for "([^"]*)"$`, test.anExpiredPasswordResetCodeExistsFor)
	ctx.Given(`^the totals cache is unavailable$`, test.theTotalsCacheIsUnavailable)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^the email queue is processed$`, test.theEmailQueueIsProcessed)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response should not contain "([^"]*)"$`, test.theResponseShouldNotContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should not exist$`, test.theResponseFieldShouldNotExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) elements$`, test.theResponseFieldShouldHaveElements)

	// Email assertion steps
	ctx.Then(`^(\d+) emails? should have been sent$`, test.emailsShouldHaveBeenSent)
	ctx.Then(`^an email with a (\d+)-digit code should have been sent to "([^"]*)"$`, test.anEmailWithACodeShouldHaveBeenSentTo)
	ctx.Then(`^no email should have been sent to "([^"]*)"$`, test.noEmailShouldHaveBeenSentTo)

	// Cache assertion steps
	ctx.Then(`^the totals of "([^"]*)" should be cached$`, test.theTotalsShouldBeCached)
	ctx.Then(`^the totals of "([^"]*)" should not be cached$`, test.theTotalsShouldNotBeCached)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
	ctx.Then(`^the item "([^"]*)" should have (\d+) units in stock$`, test.theItemShouldHaveUnitsInStock)
}

func (t *testContext) before() error {
	t.suite = shared
	t.headers = make(map[string]string)
	t.response = nil
	t.currentUser = uuid.Nil
	t.users = make(map[string]uuid.UUID)
	t.items = make(map[string]uuid.UUID)
	t.resetCode = ""
	t.lastBatch = email.BatchResult{}

	if t.suite == nil {
		return fmt.Errorf("test suite was not initialized")
	}

	t.sender.Reset()
	t.injector.RateLimiter.Reset()
	if err := t.redis.Clear(); err != nil {
		return err
	}
	return t.db.ClearDB()
}

func (t *testContext) theAPIServerIsRunning() error {
	if t.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}
