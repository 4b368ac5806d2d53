// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smartbiz/backend/internal/application/adapter"
	domainerror "github.com/smartbiz/backend/internal/domain/error"
)

const forgotPasswordMessage = "If an account with that email exists, a reset token has been sent"

// ForgotPasswordInput represents the input for forgot password request.
type ForgotPasswordInput struct {
	Email string
}

// ForgotPasswordOutput represents the output of forgot password request.
type ForgotPasswordOutput struct {
	Message string
}

// ForgotPasswordUseCase issues a numeric reset token and queues it by email.
type ForgotPasswordUseCase struct {
	userRepo     adapter.UserRepository
	tokenRepo    adapter.PasswordResetTokenRepository
	generator    adapter.CredentialGenerator
	emailService adapter.EmailService
	tokenTTL     time.Duration
	tokenDigits  int
}

// NewForgotPasswordUseCase creates a new ForgotPasswordUseCase instance.
// emailService may be nil, in which case the token is only logged.
func NewForgotPasswordUseCase(
	userRepo adapter.UserRepository,
	tokenRepo adapter.PasswordResetTokenRepository,
	generator adapter.CredentialGenerator,
	emailService adapter.EmailService,
	tokenTTL time.Duration,
	tokenDigits int,
) *ForgotPasswordUseCase {
	return &ForgotPasswordUseCase{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		generator:    generator,
		emailService: emailService,
		tokenTTL:     tokenTTL,
		tokenDigits:  tokenDigits,
	}
}

// Execute performs the forgot password request.
// Always returns success once the email is well formed to prevent email enumeration.
func (uc *ForgotPasswordUseCase) Execute(ctx context.Context, input ForgotPasswordInput) (*ForgotPasswordOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !isValidEmail(email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}

	output := &ForgotPasswordOutput{Message: forgotPasswordMessage}

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		slog.Debug("Forgot password requested for unknown email", "email", email, "error", err)
		return output, nil
	}

	code, err := uc.generator.NumericCode(uc.tokenDigits)
	if err != nil {
		slog.Error("Failed to generate reset token", "error", err, "userID", user.ID)
		return output, nil
	}

	// A new request supersedes any token still pending for the user
	if err := uc.tokenRepo.DeleteByUser(ctx, user.ID); err != nil {
		slog.Warn("Failed to clear previous reset tokens", "error", err, "userID", user.ID)
	}

	now := time.Now().UTC()
	token := &adapter.PasswordResetToken{
		ID:        uuid.New(),
		Token:     code,
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: now.Add(uc.tokenTTL),
		CreatedAt: now,
	}
	if err := uc.tokenRepo.Save(ctx, token); err != nil {
		slog.Error("Failed to save reset token", "error", err, "userID", user.ID)
		return output, nil
	}

	if uc.emailService == nil {
		slog.Info("Password reset token generated (email service not configured)",
			"userID", user.ID,
			"email", user.Email,
			"token", code,
		)
		return output, nil
	}

	err = uc.emailService.QueuePasswordResetEmail(ctx, adapter.QueuePasswordResetInput{
		UserID:    user.ID.String(),
		UserEmail: user.Email,
		UserName:  user.Username,
		Token:     code,
		ExpiresIn: humanizeTTL(uc.tokenTTL),
	})
	if err != nil {
		slog.Error("Failed to queue password reset email", "error", err, "userID", user.ID)
	} else {
		slog.Info("Password reset email queued", "userID", user.ID, "email", user.Email)
	}

	return output, nil
}

func humanizeTTL(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		if d == time.Hour {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", int(d/time.Hour))
	case d >= time.Minute:
		return fmt.Sprintf("%d minutes", int(d/time.Minute))
	default:
		return d.String()
	}
}
