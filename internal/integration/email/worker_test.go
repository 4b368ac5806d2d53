package email

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/smartbiz/backend/internal/application/adapter"
	"github.com/smartbiz/backend/internal/domain/entity"
	domainerror "github.com/smartbiz/backend/internal/domain/error"
	"github.com/smartbiz/backend/internal/integration/email/templates"
	"github.com/smartbiz/backend/internal/integration/persistence"
	"github.com/smartbiz/backend/internal/integration/persistence/model"
)

func newQueue(t *testing.T) adapter.EmailQueueRepository {
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
	if err := db.AutoMigrate(&model.EmailQueueModel{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return persistence.NewEmailQueueRepository(db)
}

func newTestWorker(t *testing.T, queue adapter.EmailQueueRepository, sender adapter.EmailSender) *Worker {
	t.Helper()
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}
	return NewWorker(queue, sender, renderer, WorkerConfig{BatchSize: 10})
}

func queueReset(t *testing.T, queue adapter.EmailQueueRepository, email string) {
	t.Helper()
	svc := NewService(queue, "SmartBiz")
	err := svc.QueuePasswordResetEmail(context.Background(), adapter.QueuePasswordResetInput{
		UserEmail: email,
		UserName:  "budi",
		Token:     "731904",
		ExpiresIn: "1 hour",
	})
	if err != nil {
		t.Fatalf("failed to queue: %v", err)
	}
}

func TestWorker_SendsQueuedPasswordReset(t *testing.T) {
	queue := newQueue(t)
	sender := NewMockEmailSender()
	worker := newTestWorker(t, queue, sender)

	queueReset(t, queue, "budi@example.com")

	result := worker.ProcessNow(context.Background())
	if result.Sent != 1 || result.Total() != 1 {
		t.Fatalf("expected one sent job, got %+v", result)
	}

	msg, ok := sender.LastTo("budi@example.com")
	if !ok {
		t.Fatal("expected email to be sent")
	}
	if msg.Subject != "SmartBiz password reset code" {
		t.Errorf("unexpected subject %q", msg.Subject)
	}
	if !strings.Contains(msg.Text, "731904") || !strings.Contains(msg.HTML, "731904") {
		t.Error("expected token in both bodies")
	}

	jobs, err := queue.GetByRecipient(context.Background(), "budi@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jobs[0].Status != entity.EmailStatusSent || jobs[0].MessageID != "mock-1" {
		t.Errorf("expected job marked sent, got %s / %s", jobs[0].Status, jobs[0].MessageID)
	}

	if again := worker.ProcessNow(context.Background()); again.Total() != 0 {
		t.Errorf("expected empty second pass, got %+v", again)
	}
}

func TestWorker_FailureHandling(t *testing.T) {
	tests := []struct {
		name       string
		permanent  bool
		wantStatus entity.EmailStatus
		wantResult BatchResult
	}{
		{"temporary failure is retried", false, entity.EmailStatusPending, BatchResult{Retried: 1}},
		{"permanent failure stops", true, entity.EmailStatusFailed, BatchResult{Failed: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queue := newQueue(t)
			sender := NewMockEmailSender()
			sender.SetFailure(errors.New("provider down"), tt.permanent)
			worker := newTestWorker(t, queue, sender)

			queueReset(t, queue, "sari@example.com")

			if got := worker.ProcessNow(context.Background()); got != tt.wantResult {
				t.Errorf("expected %+v, got %+v", tt.wantResult, got)
			}

			jobs, err := queue.GetByRecipient(context.Background(), "sari@example.com")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if jobs[0].Status != tt.wantStatus {
				t.Errorf("expected status %s, got %s", tt.wantStatus, jobs[0].Status)
			}
			if jobs[0].Attempts != 1 {
				t.Errorf("expected 1 attempt, got %d", jobs[0].Attempts)
			}
			if len(sender.Sent()) != 0 {
				t.Error("expected nothing delivered")
			}
		})
	}
}

func TestWorker_UnknownTemplateIsPermanent(t *testing.T) {
	queue := newQueue(t)
	sender := NewMockEmailSender()
	worker := newTestWorker(t, queue, sender)

	job := entity.NewEmailJob("low_stock_alert", "x@example.com", "", "s", nil)
	if err := queue.Create(context.Background(), job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := worker.ProcessNow(context.Background()); got.Failed != 1 {
		t.Errorf("expected failed job, got %+v", got)
	}
}

func TestIsPermanentError(t *testing.T) {
	tests := []struct {
		err  string
		want bool
	}{
		{"401 unauthorized", true},
		{"422 validation_error: invalid `to` field", true},
		{"429 rate limit exceeded", false},
		{"503 service unavailable", false},
		{"connection reset by peer", false},
	}
	for _, tt := range tests {
		if got := isPermanentError(errors.New(tt.err)); got != tt.want {
			t.Errorf("isPermanentError(%q) = %v, want %v", tt.err, got, tt.want)
		}
	}
	if isPermanentError(nil) {
		t.Error("nil error must not be permanent")
	}
}

func TestClassifyDeliveryError(t *testing.T) {
	permanent := classifyDeliveryError(errors.New("403 forbidden"))
	if !domainerror.IsPermanentEmailError(permanent) {
		t.Errorf("expected permanent error, got %v", permanent)
	}
	temporary := classifyDeliveryError(errors.New("504 gateway timeout"))
	if domainerror.IsPermanentEmailError(temporary) {
		t.Errorf("expected temporary error, got %v", temporary)
	}
}

func TestAddress(t *testing.T) {
	if got := address("", "sari@example.com"); got != "sari@example.com" {
		t.Errorf("unexpected bare address %q", got)
	}
	if got := address("Sari", "sari@example.com"); !strings.Contains(got, "Sari") || !strings.Contains(got, "<sari@example.com>") {
		t.Errorf("unexpected named address %q", got)
	}
}
