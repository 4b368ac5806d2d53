package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/smartbiz/backend/internal/domain/entity"
	"github.com/smartbiz/backend/internal/integration/persistence/model"
)

// newTestDB opens a private in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", "file::memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
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
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *entity.User {
	t.Helper()
	user := entity.NewUser(username, username+"@example.com", "hash")
	if err := NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedItem(t *testing.T, db *gorm.DB, owner *entity.User, name string, price int64, quantity int64) *entity.Item {
	t.Helper()
	item := entity.NewItem(owner.ID, name, decimal.NewFromInt(price), quantity)
	if err := NewItemRepository(db).Create(context.Background(), item); err != nil {
		t.Fatalf("failed to seed item: %v", err)
	}
	return item
}
