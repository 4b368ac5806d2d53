// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/smartbiz/backend/internal/application/adapter"
	"github.com/smartbiz/backend/internal/domain/entity"
)

// UserModel represents the login table in the database.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	Username     string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the UserModel.
func (UserModel) TableName() string {
	return "login"
}

// ToEntity converts a UserModel to a domain User entity.
func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromEntity creates a UserModel from a domain User entity.
func FromEntity(user *entity.User) *UserModel {
	return &UserModel{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

// ResetTokenModel represents the reset_tokens table.
type ResetTokenModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `gorm:"type:char(36);index;not null"`
	Email     string    `gorm:"type:varchar(255);index:idx_reset_tokens_email_token;not null"`
	Token     string    `gorm:"type:varchar(12);index:idx_reset_tokens_email_token;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the ResetTokenModel.
func (ResetTokenModel) TableName() string {
	return "reset_tokens"
}

// ToAdapter converts the row to the application's reset token type.
func (m *ResetTokenModel) ToAdapter() *adapter.PasswordResetToken {
	return &adapter.PasswordResetToken{
		ID:        m.ID,
		Token:     m.Token,
		UserID:    m.UserID,
		Email:     m.Email,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}
}

// ResetTokenModelFrom creates a ResetTokenModel from the application's reset token type.
func ResetTokenModelFrom(token *adapter.PasswordResetToken) *ResetTokenModel {
	return &ResetTokenModel{
		ID:        token.ID,
		UserID:    token.UserID,
		Email:     token.Email,
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
		CreatedAt: token.CreatedAt,
	}
}
