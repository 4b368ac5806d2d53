package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/smartbiz/backend/internal/application/adapter"
	"github.com/smartbiz/backend/internal/domain/entity"
	domainerror "github.com/smartbiz/backend/internal/domain/error"
	"github.com/smartbiz/backend/internal/integration/persistence/model"
)

type emailQueueRepository struct {
	db *gorm.DB
}

// NewEmailQueueRepository creates a new email queue repository instance.
func NewEmailQueueRepository(db *gorm.DB) adapter.EmailQueueRepository {
	return &emailQueueRepository{db: db}
}

func (r *emailQueueRepository) Create(ctx context.Context, job *entity.EmailJob) error {
	if err := r.db.WithContext(ctx).Create(model.EmailQueueModelFrom(job)).Error; err != nil {
		return queueError("failed to create email job", err)
	}
	return nil
}

func (r *emailQueueRepository) GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error) {
	var rows []model.EmailQueueModel
	err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_at <= ?", entity.EmailStatusPending, time.Now().UTC()).
		Order("scheduled_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, queueError("failed to load pending email jobs", err)
	}
	return toEmailJobs(rows), nil
}

func (r *emailQueueRepository) Update(ctx context.Context, job *entity.EmailJob) error {
	if err := r.db.WithContext(ctx).Save(model.EmailQueueModelFrom(job)).Error; err != nil {
		return queueError("failed to update email job", err)
	}
	return nil
}

func (r *emailQueueRepository) GetByRecipient(ctx context.Context, email string) ([]*entity.EmailJob, error) {
	var rows []model.EmailQueueModel
	err := r.db.WithContext(ctx).
		Where("to_email = ?", email).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, queueError("failed to load email jobs", err)
	}
	return toEmailJobs(rows), nil
}

func (r *emailQueueRepository) CountByStatus(ctx context.Context) (map[entity.EmailStatus]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.EmailQueueModel{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, queueError("failed to count email jobs", err)
	}

	counts := make(map[entity.EmailStatus]int64, len(rows))
	for _, row := range rows {
		counts[entity.EmailStatus(row.Status)] = row.Total
	}
	return counts, nil
}

func (r *emailQueueRepository) DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -olderThanDays)

	result := r.db.WithContext(ctx).
		Where("status = ? AND finished_at < ?", entity.EmailStatusSent, cutoff).
		Delete(&model.EmailQueueModel{})
	if result.Error != nil {
		return 0, queueError("failed to purge sent email jobs", result.Error)
	}
	return result.RowsAffected, nil
}

func toEmailJobs(rows []model.EmailQueueModel) []*entity.EmailJob {
	jobs := make([]*entity.EmailJob, len(rows))
	for i := range rows {
		jobs[i] = rows[i].ToEntity()
	}
	return jobs
}

func queueError(message string, err error) error {
	return domainerror.NewEmailError(domainerror.ErrCodeEmailQueueFailed, message, err)
}
