// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/smartbiz/backend/internal/application/adapter"
)

const (
	// DefaultBcryptCost is used when no cost is configured.
	DefaultBcryptCost = 12
	minPasswordLength = 8
	// bcrypt ignores input past 72 bytes.
	maxPasswordBytes = 72
)

var (
	errPasswordTooShort = errors.New("password must be at least 8 characters long")
	errPasswordTooLong  = errors.New("password must be at most 72 bytes long")
)

type passwordService struct {
	cost int
}

// NewPasswordService creates a bcrypt backed password service.
// A cost outside bcrypt's accepted range falls back to DefaultBcryptCost.
func NewPasswordService(cost int) adapter.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &passwordService{cost: cost}
}

func (s *passwordService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *passwordService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func (s *passwordService) ValidatePasswordStrength(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return errPasswordTooShort
	}
	if len(password) > maxPasswordBytes {
		return errPasswordTooLong
	}
	return nil
}
