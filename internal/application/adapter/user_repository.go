// Package adapter declares the ports the use cases depend on. Implementations live in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/smartbiz/backend/internal/domain/entity"
)

// UserRepository stores accounts in the login table.
type UserRepository interface {
	// Create returns domainerror.ErrUserAlreadyExists when the username or email is taken.
	Create(ctx context.Context, user *entity.User) error

	// Lookups return domainerror.ErrUserNotFound when nothing matches.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// ExistsByUsernameOrEmail reports whether either identifier is already registered.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}
