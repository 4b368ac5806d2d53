package db

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/smartbiz/backend/config"
)

func TestDialectorFor(t *testing.T) {
	tests := []struct {
		driver  string
		want    string
		wantErr bool
	}{
		{"postgres", "postgres", false},
		{"", "postgres", false},
		{"mysql", "mysql", false},
		{"oracle", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			d, err := dialectorFor(&config.DatabaseConfig{Driver: tt.driver, URL: "x"})
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error=%v, got %v", tt.wantErr, err)
			}
			if err == nil && d.Name() != tt.want {
				t.Errorf("expected %s dialector, got %s", tt.want, d.Name())
			}
		})
	}
}

func TestWrapAndMigrate(t *testing.T) {
	sqlDB, err := sql.Open("sqlite", "file::memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	gdb, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}

	database, err := Wrap(gdb, &config.DatabaseConfig{MaxIdleConns: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := database.Migrate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, table := range []string{"login", "items", "income_history", "expense_history", "profit_aggregate", "reset_tokens", "email_queue"} {
		if !gdb.Migrator().HasTable(table) {
			t.Errorf("expected table %s", table)
		}
	}
	if err := database.Ping(context.Background()); err != nil {
		t.Errorf("unexpected ping error: %v", err)
	}
	if err := database.Close(); err != nil {
		t.Errorf("unexpected close error: %v", err)
	}
	if err := database.Ping(context.Background()); err == nil {
		t.Error("expected ping to fail after close")
	}
}

func TestOpenRedis(t *testing.T) {
	client, err := OpenRedis(&config.RedisConfig{Enabled: false})
	if err != nil || client != nil {
		t.Fatalf("expected disabled cache, got %v / %v", client, err)
	}

	mr := miniredis.RunT(t)
	client, err = OpenRedis(&config.RedisConfig{Enabled: true, URL: "redis://" + mr.Addr() + "/0"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	if _, err := OpenRedis(&config.RedisConfig{Enabled: true, URL: "not a url"}); err == nil {
		t.Error("expected invalid url error")
	}
}
