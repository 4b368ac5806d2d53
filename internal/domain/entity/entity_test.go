package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestItem_CanFulfil(t *testing.T) {
	item := NewItem(uuid.New(), "Kopi Bubuk", decimal.NewFromInt(1000), 10)

	tests := []struct {
		quantity int64
		want     bool
	}{
		{quantity: 1, want: true},
		{quantity: 10, want: true},
		{quantity: 11, want: false},
		{quantity: 0, want: false},
		{quantity: -2, want: false},
	}

	for _, tt := range tests {
		if got := item.CanFulfil(tt.quantity); got != tt.want {
			t.Errorf("CanFulfil(%d) = %v, want %v", tt.quantity, got, tt.want)
		}
	}
	if !item.Valuation().Equal(decimal.NewFromInt(10000)) {
		t.Errorf("expected valuation 10000, got %s", item.Valuation())
	}
}

func TestProfitAggregate_IsConsistent(t *testing.T) {
	agg := NewProfitAggregate(uuid.New(), decimal.NewFromInt(3000), decimal.NewFromInt(1600))
	if !agg.TotalProfit.Equal(decimal.NewFromInt(1400)) {
		t.Errorf("expected profit 1400, got %s", agg.TotalProfit)
	}
	if !agg.IsConsistent() {
		t.Error("expected new aggregate to be consistent")
	}

	agg.TotalIncome = agg.TotalIncome.Add(decimal.NewFromInt(1))
	if agg.IsConsistent() {
		t.Error("expected drifted aggregate to be inconsistent")
	}
}

func TestEmailJob_RecordFailure(t *testing.T) {
	tests := []struct {
		name       string
		failures   int
		permanent  bool
		wantStatus EmailStatus
		minWait    time.Duration
	}{
		{name: "first failure waits", failures: 1, wantStatus: EmailStatusPending, minWait: 30 * time.Second},
		{name: "second failure waits longer", failures: 2, wantStatus: EmailStatusPending, minWait: 2 * time.Minute},
		{name: "attempts exhausted", failures: DefaultEmailAttempts, wantStatus: EmailStatusFailed},
		{name: "permanent failure stops at once", failures: 1, permanent: true, wantStatus: EmailStatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := NewEmailJob(TemplatePasswordReset, "sari@example.com", "sari", "code", nil)
			before := time.Now().UTC()
			for i := 0; i < tt.failures; i++ {
				job.BeginAttempt()
				job.RecordFailure(errors.New("provider down"), tt.permanent)
			}

			if job.Status != tt.wantStatus {
				t.Fatalf("expected status %s, got %s", tt.wantStatus, job.Status)
			}
			if job.Attempts != tt.failures {
				t.Errorf("expected %d attempts, got %d", tt.failures, job.Attempts)
			}
			if job.LastError != "provider down" {
				t.Errorf("unexpected last error %q", job.LastError)
			}
			if tt.wantStatus == EmailStatusFailed {
				if job.FinishedAt == nil {
					t.Error("expected finished time on failed job")
				}
				return
			}
			if job.ScheduledAt.Before(before.Add(tt.minWait)) {
				t.Errorf("expected retry at least %s out, got %s", tt.minWait, job.ScheduledAt.Sub(before))
			}
		})
	}
}

func TestEmailJob_MarkDelivered(t *testing.T) {
	job := NewEmailJob(TemplatePasswordReset, "sari@example.com", "", "code", nil)
	job.RecordFailure(errors.New("timeout"), false)
	job.MarkDelivered("msg-1")

	if job.Status != EmailStatusSent || job.MessageID != "msg-1" {
		t.Errorf("unexpected job state %s / %s", job.Status, job.MessageID)
	}
	if job.LastError != "" || job.FinishedAt == nil {
		t.Error("expected error cleared and finished time set")
	}
	if job.Vars == nil {
		t.Error("expected vars initialised")
	}
}
