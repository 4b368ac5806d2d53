package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/smartbiz/backend/internal/domain/entity"
)

func TestEmailQueueRepository_PendingOrderAndSchedule(t *testing.T) {
	db := newTestDB(t)
	repo := NewEmailQueueRepository(db)
	ctx := context.Background()

	later := entity.NewEmailJob(entity.TemplatePasswordReset, "a@example.com", "a", "s", map[string]string{"token": "111111"})
	later.ScheduledAt = time.Now().UTC().Add(-time.Minute)
	earlier := entity.NewEmailJob(entity.TemplatePasswordReset, "b@example.com", "b", "s", nil)
	earlier.ScheduledAt = time.Now().UTC().Add(-time.Hour)
	future := entity.NewEmailJob(entity.TemplatePasswordReset, "c@example.com", "c", "s", nil)
	future.ScheduledAt = time.Now().UTC().Add(time.Hour)

	for _, job := range []*entity.EmailJob{later, earlier, future} {
		if err := repo.Create(ctx, job); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	jobs, err := repo.GetPendingJobs(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 due jobs, got %d", len(jobs))
	}
	if jobs[0].ID != earlier.ID || jobs[1].ID != later.ID {
		t.Error("expected jobs ordered by schedule")
	}
	if jobs[1].Vars["token"] != "111111" {
		t.Errorf("expected vars to round trip, got %v", jobs[1].Vars)
	}
}

func TestEmailQueueRepository_CountAndPurge(t *testing.T) {
	db := newTestDB(t)
	repo := NewEmailQueueRepository(db)
	ctx := context.Background()

	old := entity.NewEmailJob(entity.TemplatePasswordReset, "old@example.com", "", "s", nil)
	old.MarkDelivered("r-1")
	stale := old.FinishedAt.AddDate(0, 0, -40)
	old.FinishedAt = &stale
	recent := entity.NewEmailJob(entity.TemplatePasswordReset, "new@example.com", "", "s", nil)
	recent.MarkDelivered("r-2")
	pending := entity.NewEmailJob(entity.TemplatePasswordReset, "p@example.com", "", "s", nil)

	for _, job := range []*entity.EmailJob{old, recent, pending} {
		if err := repo.Create(ctx, job); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	counts, err := repo.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts[entity.EmailStatusSent] != 2 || counts[entity.EmailStatusPending] != 1 {
		t.Errorf("unexpected counts %v", counts)
	}

	deleted, err := repo.DeleteOldSentJobs(ctx, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 purged job, got %d", deleted)
	}

	jobs, err := repo.GetByRecipient(ctx, "new@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 || jobs[0].MessageID != "r-2" {
		t.Errorf("expected recent sent job to survive, got %v", jobs)
	}
}

func TestEmailQueueRepository_StorageFailure(t *testing.T) {
	db := newTestDB(t)
	repo := NewEmailQueueRepository(db)

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = sqlDB.Close()

	err = repo.Create(context.Background(), entity.NewEmailJob(entity.TemplatePasswordReset, "x@example.com", "", "s", nil))
	if err == nil {
		t.Fatal("expected error on closed database")
	}
	if errors.Unwrap(err) == nil {
		t.Error("expected wrapped storage error")
	}
}
