// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/smartbiz/backend/internal/application/adapter"
	"github.com/smartbiz/backend/internal/domain/entity"
	domainerror "github.com/smartbiz/backend/internal/domain/error"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const maxUsernameLength = 50

// RegisterUserInput represents the input for user registration.
type RegisterUserInput struct {
	Username string
	Email    string
	Password string
}

// RegisterUserOutput represents the output of user registration.
type RegisterUserOutput struct {
	User *entity.User
}

// RegisterUserUseCase handles user registration logic.
type RegisterUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
}

// NewRegisterUserUseCase creates a new RegisterUserUseCase instance.
func NewRegisterUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
	}
}

// Execute performs the user registration.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if username == "" || len(username) > maxUsernameLength {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingFields,
			fmt.Sprintf("username is required and must be at most %d characters", maxUsernameLength),
			domainerror.ErrMissingIdentifier,
		)
	}

	if !isValidEmail(email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}

	if err := uc.passwordService.ValidatePasswordStrength(input.Password); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeWeakPassword,
			err.Error(),
			domainerror.ErrWeakPassword,
		)
	}

	exists, err := uc.userRepo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeUserExists,
			"username or email already registered",
			domainerror.ErrUserAlreadyExists,
		)
	}

	passwordHash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(username, email, passwordHash)
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerror.ErrUserAlreadyExists) {
			// Lost a race with a concurrent signup for the same identifiers
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeUserExists,
				"username or email already registered",
				domainerror.ErrUserAlreadyExists,
			)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &RegisterUserOutput{User: user}, nil
}

// isValidEmail validates email format using a simple regex.
func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
