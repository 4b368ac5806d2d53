// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/smartbiz/backend/internal/application/adapter"
	domainerror "github.com/smartbiz/backend/internal/domain/error"
)

// ResetPasswordInput represents the input for password reset.
type ResetPasswordInput struct {
	Email       string
	Token       string
	NewPassword string
}

// ResetPasswordOutput represents the output of password reset.
type ResetPasswordOutput struct {
	Message string
}

// ResetPasswordUseCase redeems a reset token for a new password.
type ResetPasswordUseCase struct {
	tokenRepo       adapter.PasswordResetTokenRepository
	passwordService adapter.PasswordService
}

// NewResetPasswordUseCase creates a new ResetPasswordUseCase instance.
func NewResetPasswordUseCase(
	tokenRepo adapter.PasswordResetTokenRepository,
	passwordService adapter.PasswordService,
) *ResetPasswordUseCase {
	return &ResetPasswordUseCase{
		tokenRepo:       tokenRepo,
		passwordService: passwordService,
	}
}

// Execute performs the password reset.
func (uc *ResetPasswordUseCase) Execute(ctx context.Context, input ResetPasswordInput) (*ResetPasswordOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	code := strings.TrimSpace(input.Token)

	if !isValidEmail(email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}
	if code == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingFields,
			"token is required",
			domainerror.ErrInvalidResetToken,
		)
	}

	if err := uc.passwordService.ValidatePasswordStrength(input.NewPassword); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeWeakPassword,
			err.Error(),
			domainerror.ErrWeakPassword,
		)
	}

	resetToken, err := uc.tokenRepo.FindByEmailAndToken(ctx, email, code)
	if err != nil {
		if errors.Is(err, domainerror.ErrInvalidResetToken) {
			return nil, invalidResetToken()
		}
		return nil, fmt.Errorf("failed to find reset token: %w", err)
	}

	if resetToken.IsExpired(time.Now().UTC()) {
		if err := uc.tokenRepo.Delete(ctx, resetToken.ID); err != nil {
			slog.Warn("Failed to delete expired reset token", "error", err, "userID", resetToken.UserID)
		}
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeExpiredResetToken,
			"password reset token has expired",
			domainerror.ErrInvalidResetToken,
		)
	}

	passwordHash, err := uc.passwordService.HashPassword(input.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := uc.tokenRepo.Redeem(ctx, resetToken.ID, resetToken.UserID, passwordHash); err != nil {
		if errors.Is(err, domainerror.ErrInvalidResetToken) {
			// Claimed by a concurrent reset between lookup and redeem
			return nil, invalidResetToken()
		}
		return nil, fmt.Errorf("failed to redeem reset token: %w", err)
	}

	return &ResetPasswordOutput{
		Message: "Password has been successfully reset",
	}, nil
}

func invalidResetToken() error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeInvalidResetToken,
		"invalid or expired password reset token",
		domainerror.ErrInvalidResetToken,
	)
}
