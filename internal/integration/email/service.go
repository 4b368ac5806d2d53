// Package email provides email sending functionality.
package email

import (
	"context"

	"github.com/smartbiz/backend/internal/application/adapter"
	"github.com/smartbiz/backend/internal/domain/entity"
	domainerror "github.com/smartbiz/backend/internal/domain/error"
)

// Service queues outbound emails for the worker.
type Service struct {
	queue   adapter.EmailQueueRepository
	appName string
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, appName string) *Service {
	return &Service{
		queue:   queue,
		appName: appName,
	}
}

// QueuePasswordResetEmail queues the email carrying a numeric reset token.
func (s *Service) QueuePasswordResetEmail(ctx context.Context, input adapter.QueuePasswordResetInput) error {
	job := entity.NewEmailJob(
		entity.TemplatePasswordReset,
		input.UserEmail,
		input.UserName,
		s.appName+" password reset code",
		map[string]string{
			"app_name":   s.appName,
			"user_name":  input.UserName,
			"token":      input.Token,
			"expires_in": input.ExpiresIn,
		},
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue password reset email",
			err,
		)
	}

	return nil
}

var _ adapter.EmailService = (*Service)(nil)
