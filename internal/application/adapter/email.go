package adapter

import (
	"context"

	"github.com/smartbiz/backend/internal/domain/entity"
)

// EmailService queues transactional emails for asynchronous delivery.
type EmailService interface {
	QueuePasswordResetEmail(ctx context.Context, input QueuePasswordResetInput) error
}

// QueuePasswordResetInput is everything the password reset email shows.
type QueuePasswordResetInput struct {
	UserID    string
	UserEmail string
	UserName  string
	Token     string
	ExpiresIn string
}

// EmailSender hands one rendered message to a delivery provider.
// Errors should be *domainerror.EmailError so the caller can tell retryable failures apart.
type EmailSender interface {
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// SendEmailInput is a fully rendered message.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult identifies the delivered message at the provider.
type SendEmailResult struct {
	MessageID string
}

// EmailQueueRepository persists outbound email jobs.
type EmailQueueRepository interface {
	Create(ctx context.Context, job *entity.EmailJob) error

	// GetPendingJobs returns due jobs, oldest schedule first.
	GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error)

	Update(ctx context.Context, job *entity.EmailJob) error

	// GetByRecipient returns the jobs addressed to email, newest first.
	GetByRecipient(ctx context.Context, email string) ([]*entity.EmailJob, error)

	// CountByStatus reports how many jobs sit in each status.
	CountByStatus(ctx context.Context) (map[entity.EmailStatus]int64, error)

	// DeleteOldSentJobs removes sent jobs older than the given number of days.
	DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error)
}
