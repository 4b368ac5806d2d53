package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartbiz/backend/internal/application/adapter"
	domainerror "github.com/smartbiz/backend/internal/domain/error"
	"github.com/smartbiz/backend/internal/integration/persistence/model"
)

// resetTokenRepository implements the adapter.PasswordResetTokenRepository interface.
type resetTokenRepository struct {
	db *gorm.DB
}

// NewResetTokenRepository creates a new reset token repository instance.
func NewResetTokenRepository(db *gorm.DB) adapter.PasswordResetTokenRepository {
	return &resetTokenRepository{
		db: db,
	}
}

// Save stores a pending password reset.
func (r *resetTokenRepository) Save(ctx context.Context, token *adapter.PasswordResetToken) error {
	return r.db.WithContext(ctx).Create(model.ResetTokenModelFrom(token)).Error
}

// FindByEmailAndToken returns the newest pending reset matching both values.
func (r *resetTokenRepository) FindByEmailAndToken(ctx context.Context, email, token string) (*adapter.PasswordResetToken, error) {
	var m model.ResetTokenModel
	result := r.db.WithContext(ctx).
		Where("email = ? AND token = ?", email, token).
		Order("created_at DESC").
		First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrInvalidResetToken
		}
		return nil, result.Error
	}
	return m.ToAdapter(), nil
}

// Delete removes a single token.
func (r *resetTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ResetTokenModel{}, "id = ?", id).Error
}

// Redeem claims the token by deleting it and updates the password in the same
// transaction. Of two concurrent redeems only one deletes the row.
func (r *resetTokenRepository) Redeem(ctx context.Context, tokenID, userID uuid.UUID, passwordHash string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		claimed := tx.Delete(&model.ResetTokenModel{}, "id = ? AND user_id = ?", tokenID, userID)
		if claimed.Error != nil {
			return claimed.Error
		}
		if claimed.RowsAffected != 1 {
			return domainerror.ErrInvalidResetToken
		}
		return NewUserRepository(tx).UpdatePassword(ctx, userID, passwordHash)
	})
}

// DeleteByUser removes every pending token of a user.
func (r *resetTokenRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ResetTokenModel{}, "user_id = ?", userID).Error
}
