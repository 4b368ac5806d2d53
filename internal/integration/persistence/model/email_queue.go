package model

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/smartbiz/backend/internal/domain/entity"
)

// EmailQueueModel represents the email_queue table. Template variables are stored as a JSON object.
type EmailQueueModel struct {
	ID          uuid.UUID  `gorm:"type:char(36);primaryKey"`
	Template    string     `gorm:"type:varchar(50);not null"`
	ToEmail     string     `gorm:"type:varchar(255);index;not null"`
	ToName      string     `gorm:"type:varchar(255)"`
	Subject     string     `gorm:"type:varchar(255);not null"`
	Vars        string     `gorm:"type:text;not null"`
	Status      string     `gorm:"type:varchar(20);index:idx_email_queue_due;not null;default:'pending'"`
	Attempts    int        `gorm:"not null;default:0"`
	MaxAttempts int        `gorm:"not null;default:3"`
	LastError   string     `gorm:"type:text"`
	MessageID   string     `gorm:"type:varchar(100)"`
	CreatedAt   time.Time  `gorm:"not null"`
	ScheduledAt time.Time  `gorm:"index:idx_email_queue_due;not null"`
	FinishedAt  *time.Time `gorm:"index"`
}

// TableName returns the table name for the EmailQueueModel.
func (EmailQueueModel) TableName() string {
	return "email_queue"
}

// ToEntity converts the row to a domain EmailJob. Unreadable vars decode as empty.
func (m *EmailQueueModel) ToEntity() *entity.EmailJob {
	vars := map[string]string{}
	if m.Vars != "" {
		if err := json.Unmarshal([]byte(m.Vars), &vars); err != nil {
			slog.Warn("Unreadable email vars", "error", err, "jobID", m.ID)
			vars = map[string]string{}
		}
	}

	return &entity.EmailJob{
		ID:          m.ID,
		Template:    entity.EmailTemplate(m.Template),
		To:          m.ToEmail,
		ToName:      m.ToName,
		Subject:     m.Subject,
		Vars:        vars,
		Status:      entity.EmailStatus(m.Status),
		Attempts:    m.Attempts,
		MaxAttempts: m.MaxAttempts,
		LastError:   m.LastError,
		MessageID:   m.MessageID,
		CreatedAt:   m.CreatedAt,
		ScheduledAt: m.ScheduledAt,
		FinishedAt:  m.FinishedAt,
	}
}

// EmailQueueModelFrom creates an EmailQueueModel from a domain EmailJob.
func EmailQueueModelFrom(job *entity.EmailJob) *EmailQueueModel {
	// A map[string]string always marshals
	vars, _ := json.Marshal(job.Vars)

	return &EmailQueueModel{
		ID:          job.ID,
		Template:    string(job.Template),
		ToEmail:     job.To,
		ToName:      job.ToName,
		Subject:     job.Subject,
		Vars:        string(vars),
		Status:      string(job.Status),
		Attempts:    job.Attempts,
		MaxAttempts: job.MaxAttempts,
		LastError:   job.LastError,
		MessageID:   job.MessageID,
		CreatedAt:   job.CreatedAt,
		ScheduledAt: job.ScheduledAt,
		FinishedAt:  job.FinishedAt,
	}
}
