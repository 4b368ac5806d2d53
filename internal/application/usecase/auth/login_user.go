// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/smartbiz/backend/internal/application/adapter"
	"github.com/smartbiz/backend/internal/domain/entity"
	domainerror "github.com/smartbiz/backend/internal/domain/error"
)

// LoginUserInput represents the input for user login.
// Either Username or Email identifies the account.
type LoginUserInput struct {
	Username string
	Email    string
	Password string
}

// LoginUserOutput represents the output of user login.
type LoginUserOutput struct {
	User *entity.User
}

// LoginUserUseCase handles user login logic.
type LoginUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
}

// NewLoginUserUseCase creates a new LoginUserUseCase instance.
func NewLoginUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
	}
}

// Execute performs the user login.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*LoginUserOutput, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if username == "" && email == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingFields,
			"username or email is required",
			domainerror.ErrMissingIdentifier,
		)
	}

	user, err := uc.findUser(ctx, username, email)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			// Same answer as a wrong password to prevent account enumeration
			return nil, invalidCredentials()
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return nil, invalidCredentials()
	}

	return &LoginUserOutput{User: user}, nil
}

func (uc *LoginUserUseCase) findUser(ctx context.Context, username, email string) (*entity.User, error) {
	if username != "" {
		user, err := uc.userRepo.FindByUsername(ctx, username)
		if err == nil || email == "" || !errors.Is(err, domainerror.ErrUserNotFound) {
			return user, err
		}
	}
	return uc.userRepo.FindByEmail(ctx, email)
}

func invalidCredentials() error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeInvalidCredentials,
		"invalid username, email or password",
		domainerror.ErrInvalidCredentials,
	)
}
