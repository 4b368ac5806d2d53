package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/smartbiz/backend/internal/application/adapter"
	"github.com/smartbiz/backend/internal/domain/entity"
	domainerror "github.com/smartbiz/backend/internal/domain/error"
)

func TestUserRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	user := seedUser(t, db, "budi")

	byName, err := repo.FindByUsername(ctx, "budi")
	if err != nil || byName.ID != user.ID {
		t.Fatalf("expected to find user by username, got %v", err)
	}
	byEmail, err := repo.FindByEmail(ctx, "budi@example.com")
	if err != nil || byEmail.ID != user.ID {
		t.Fatalf("expected to find user by email, got %v", err)
	}
	if _, err := repo.FindByID(ctx, uuid.New()); !errors.Is(err, domainerror.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}

	exists, err := repo.ExistsByUsernameOrEmail(ctx, "someone", "budi@example.com")
	if err != nil || !exists {
		t.Errorf("expected email to be taken, got exists=%v err=%v", exists, err)
	}
	exists, err = repo.ExistsByUsernameOrEmail(ctx, "someone", "someone@example.com")
	if err != nil || exists {
		t.Errorf("expected identifiers to be free, got exists=%v err=%v", exists, err)
	}

	dup := entity.NewUser("budi", "other@example.com", "hash")
	if err := repo.Create(ctx, dup); !errors.Is(err, domainerror.ErrUserAlreadyExists) {
		t.Errorf("expected ErrUserAlreadyExists for duplicate username, got %v", err)
	}

	if err := repo.UpdatePassword(ctx, user.ID, "new-hash"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reloaded, _ := repo.FindByID(ctx, user.ID)
	if reloaded.PasswordHash != "new-hash" {
		t.Errorf("expected password hash to change, got %s", reloaded.PasswordHash)
	}
	if err := repo.UpdatePassword(ctx, uuid.New(), "x"); !errors.Is(err, domainerror.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestResetTokenRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewResetTokenRepository(db)
	user := seedUser(t, db, "budi")

	token := &adapter.PasswordResetToken{
		ID:        uuid.New(),
		Token:     "123456",
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Save(ctx, token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindByEmailAndToken(ctx, user.Email, "123456")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.UserID != user.ID {
		t.Errorf("expected token of user %s, got %s", user.ID, found.UserID)
	}
	if _, err := repo.FindByEmailAndToken(ctx, "other@example.com", "123456"); !errors.Is(err, domainerror.ErrInvalidResetToken) {
		t.Errorf("expected ErrInvalidResetToken for another email, got %v", err)
	}

	if err := repo.Delete(ctx, found.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.FindByEmailAndToken(ctx, user.Email, "123456"); !errors.Is(err, domainerror.ErrInvalidResetToken) {
		t.Errorf("expected deleted token to be gone, got %v", err)
	}
}

func TestResetTokenRepository_RedeemIsSingleUse(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewResetTokenRepository(db)
	users := NewUserRepository(db)
	user := seedUser(t, db, "budi")

	save := func(userID uuid.UUID) *adapter.PasswordResetToken {
		t.Helper()
		token := &adapter.PasswordResetToken{
			ID:        uuid.New(),
			Token:     "654321",
			UserID:    userID,
			Email:     user.Email,
			ExpiresAt: time.Now().UTC().Add(time.Hour),
			CreatedAt: time.Now().UTC(),
		}
		if err := repo.Save(ctx, token); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return token
	}

	token := save(user.ID)
	if err := repo.Redeem(ctx, token.ID, user.ID, "hash-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Redeem(ctx, token.ID, user.ID, "hash-2"); !errors.Is(err, domainerror.ErrInvalidResetToken) {
		t.Fatalf("expected second redeem to fail with ErrInvalidResetToken, got %v", err)
	}
	stored, err := users.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.PasswordHash != "hash-1" {
		t.Errorf("expected the first redeem's hash, got %s", stored.PasswordHash)
	}

	// a failed password update keeps the token redeemable
	orphan := save(uuid.New())
	if err := repo.Redeem(ctx, orphan.ID, orphan.UserID, "hash-3"); !errors.Is(err, domainerror.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := repo.FindByEmailAndToken(ctx, user.Email, "654321"); err != nil {
		t.Errorf("expected token to survive the rolled back redeem, got %v", err)
	}
}
