package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus is the delivery state of a queued email.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// EmailTemplate names the html/text template pair an email is rendered from.
type EmailTemplate string

// TemplatePasswordReset carries a numeric password reset code.
const TemplatePasswordReset EmailTemplate = "password_reset"

// DefaultEmailAttempts is how many deliveries are tried before a job fails for good.
const DefaultEmailAttempts = 3

// retryBackoff[n] is the wait after the (n+1)th failed attempt.
var retryBackoff = []time.Duration{30 * time.Second, 2 * time.Minute}

// EmailJob is one outgoing email. The request path enqueues it and the
// email worker renders and delivers it.
type EmailJob struct {
	ID          uuid.UUID
	Template    EmailTemplate
	To          string
	ToName      string
	Subject     string
	Vars        map[string]string
	Status      EmailStatus
	Attempts    int
	MaxAttempts int
	LastError   string
	MessageID   string
	CreatedAt   time.Time
	ScheduledAt time.Time
	FinishedAt  *time.Time
}

// NewEmailJob creates a pending job that is due immediately.
func NewEmailJob(template EmailTemplate, to, toName, subject string, vars map[string]string) *EmailJob {
	now := time.Now().UTC()
	if vars == nil {
		vars = map[string]string{}
	}
	return &EmailJob{
		ID:          uuid.New(),
		Template:    template,
		To:          to,
		ToName:      toName,
		Subject:     subject,
		Vars:        vars,
		Status:      EmailStatusPending,
		MaxAttempts: DefaultEmailAttempts,
		CreatedAt:   now,
		ScheduledAt: now,
	}
}

// BeginAttempt claims the job for delivery.
func (e *EmailJob) BeginAttempt() {
	e.Status = EmailStatusProcessing
}

// MarkDelivered records the provider's message id.
func (e *EmailJob) MarkDelivered(messageID string) {
	now := time.Now().UTC()
	e.Status = EmailStatusSent
	e.MessageID = messageID
	e.LastError = ""
	e.FinishedAt = &now
}

// RecordFailure counts a failed attempt. The job is retried later unless the
// failure is permanent or the attempts are used up.
func (e *EmailJob) RecordFailure(err error, permanent bool) {
	now := time.Now().UTC()
	e.Attempts++
	e.LastError = err.Error()

	if permanent || e.Attempts >= e.MaxAttempts {
		e.Status = EmailStatusFailed
		e.FinishedAt = &now
		return
	}

	wait := retryBackoff[len(retryBackoff)-1]
	if e.Attempts-1 < len(retryBackoff) {
		wait = retryBackoff[e.Attempts-1]
	}
	e.Status = EmailStatusPending
	e.ScheduledAt = now.Add(wait)
}
