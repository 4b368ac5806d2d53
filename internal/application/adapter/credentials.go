package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PasswordService hashes and checks account passwords.
type PasswordService interface {
	HashPassword(password string) (string, error)

	// VerifyPassword returns an error when password does not match hashedPassword.
	VerifyPassword(hashedPassword, password string) error

	// ValidatePasswordStrength rejects passwords that are too short or too long to hash.
	ValidatePasswordStrength(password string) error
}

// CredentialGenerator produces short secrets sent to users out of band.
type CredentialGenerator interface {
	// NumericCode returns a uniformly random decimal code of exactly digits characters.
	NumericCode(digits int) (string, error)
}

// PasswordResetToken is a numeric code a user may redeem once to set a new password.
type PasswordResetToken struct {
	ID        uuid.UUID
	Token     string
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired reports whether the token can no longer be redeemed at now.
func (t *PasswordResetToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// PasswordResetTokenRepository stores pending password resets.
type PasswordResetTokenRepository interface {
	Save(ctx context.Context, token *PasswordResetToken) error

	// FindByEmailAndToken returns domainerror.ErrInvalidResetToken when nothing matches.
	FindByEmailAndToken(ctx context.Context, email, token string) (*PasswordResetToken, error)

	// Delete removes a token so it cannot be redeemed twice.
	Delete(ctx context.Context, id uuid.UUID) error

	// Redeem deletes the token and stores the user's new password hash in one
	// transaction. It returns domainerror.ErrInvalidResetToken when the token was
	// already claimed, leaving the password unchanged.
	Redeem(ctx context.Context, tokenID, userID uuid.UUID, passwordHash string) error

	// DeleteByUser removes every pending token of a user.
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
