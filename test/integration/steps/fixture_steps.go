package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartbiz/backend/internal/integration/persistence/model"
)

const totalsKeyPrefix = "smartbiz:totals:"

func (t *testContext) aUserExists(username, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user := &model.UserModel{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := t.db.DbConn.Create(user).Error; err != nil {
		return err
	}

	t.users[username] = user.ID
	t.currentUser = user.ID
	return nil
}

func (t *testContext) theUserHasAnItem(username, name, price string, quantity int) error {
	ownerID, ok := t.users[username]
	if !ok {
		return fmt.Errorf("user '%s' was not created in this scenario", username)
	}
	unitPrice, err := decimal.NewFromString(price)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	item := &model.ItemModel{
		ID:        uuid.New(),
		UserID:    ownerID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  int64(quantity),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := t.db.DbConn.Create(item).Error; err != nil {
		return err
	}

	t.items[name] = item.ID
	return nil
}

func (t *testContext) aPasswordResetCodeExistsFor(code, email string) error {
	return t.createResetCode(code, email, time.Now().UTC().Add(15*time.Minute))
}

func (t *testContext) anExpiredPasswordResetCodeExistsFor(code, email string) error {
	return t.createResetCode(code, email, time.Now().UTC().Add(-time.Minute))
}

func (t *testContext) createResetCode(code, email string, expiresAt time.Time) error {
	var user model.UserModel
	if err := t.db.DbConn.Where("email = ?", email).First(&user).Error; err != nil {
		return fmt.Errorf("user with email '%s' not found: %w", email, err)
	}

	token := &model.ResetTokenModel{
		ID:        uuid.New(),
		UserID:    user.ID,
		Email:     email,
		Token:     code,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	if err := t.db.DbConn.Create(token).Error; err != nil {
		return err
	}

	t.resetCode = code
	return nil
}

func (t *testContext) theTotalsCacheIsUnavailable() error {
	t.redis.Fail("ERR cache unavailable")
	return nil
}

func (t *testContext) theEmailQueueIsProcessed() error {
	t.lastBatch = t.injector.EmailWorker.ProcessNow(context.Background())
	return nil
}

func (t *testContext) emailsShouldHaveBeenSent(count int) error {
	if sent := len(t.sender.Sent()); sent != count {
		return fmt.Errorf("expected %d emails sent, got %d (batch: %+v)", count, sent, t.lastBatch)
	}
	return nil
}

func (t *testContext) anEmailWithACodeShouldHaveBeenSentTo(digits int, address string) error {
	message, ok := t.sender.LastTo(address)
	if !ok {
		return fmt.Errorf("no email sent to '%s' (batch: %+v)", address, t.lastBatch)
	}

	pattern := regexp.MustCompile(fmt.Sprintf(`\b\d{%d}\b`, digits))
	code := pattern.FindString(message.Text)
	if code == "" {
		return fmt.Errorf("email to '%s' has no %d-digit code: %s", address, digits, message.Text)
	}
	if !strings.Contains(message.HTML, code) {
		return fmt.Errorf("html body of email to '%s' does not contain code %s", address, code)
	}

	t.resetCode = code
	return nil
}

func (t *testContext) noEmailShouldHaveBeenSentTo(address string) error {
	if _, ok := t.sender.LastTo(address); ok {
		return fmt.Errorf("unexpected email sent to '%s'", address)
	}
	return nil
}

func (t *testContext) theTotalsShouldBeCached(username string) error {
	ownerID, ok := t.users[username]
	if !ok {
		return fmt.Errorf("user '%s' was not created in this scenario", username)
	}
	if !t.redis.Exists(totalsKeyPrefix + ownerID.String()) {
		return fmt.Errorf("totals of '%s' are not cached", username)
	}
	return nil
}

func (t *testContext) theTotalsShouldNotBeCached(username string) error {
	ownerID, ok := t.users[username]
	if !ok {
		return fmt.Errorf("user '%s' was not created in this scenario", username)
	}
	if t.redis.Exists(totalsKeyPrefix + ownerID.String()) {
		return fmt.Errorf("totals of '%s' are still cached", username)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	count, err := t.db.Count(table, nil)
	if err != nil {
		return err
	}
	if count != int64(quantity) {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	count, err := t.db.Count(table, criteria)
	if err != nil {
		return err
	}
	if count != int64(quantity) {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) theItemShouldHaveUnitsInStock(name string, quantity int) error {
	itemID, ok := t.items[name]
	if !ok {
		return fmt.Errorf("item '%s' was not created in this scenario", name)
	}

	var item model.ItemModel
	if err := t.db.DbConn.Where("id = ?", itemID).First(&item).Error; err != nil {
		return err
	}
	if item.Quantity != int64(quantity) {
		return fmt.Errorf("item '%s' expected %d units, got %d", name, quantity, item.Quantity)
	}
	return nil
}
