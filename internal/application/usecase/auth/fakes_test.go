package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/smartbiz/backend/internal/application/adapter"
	"github.com/smartbiz/backend/internal/domain/entity"
	domainerror "github.com/smartbiz/backend/internal/domain/error"
)

type fakeUserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepository(users ...*entity.User) *fakeUserRepository {
	repo := &fakeUserRepository{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepository) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepository) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepository) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domainerror.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepository) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// plainPasswordService "hashes" by prefixing so tests stay fast and readable.
type plainPasswordService struct{}

func (plainPasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (plainPasswordService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func (plainPasswordService) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}
	return nil
}

type fakeTokenRepository struct {
	mu     sync.Mutex
	tokens map[uuid.UUID]*adapter.PasswordResetToken
	users  *fakeUserRepository
}

func newFakeTokenRepository() *fakeTokenRepository {
	return &fakeTokenRepository{tokens: make(map[uuid.UUID]*adapter.PasswordResetToken)}
}

func (r *fakeTokenRepository) Save(_ context.Context, token *adapter.PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token.ID] = token
	return nil
}

func (r *fakeTokenRepository) FindByEmailAndToken(_ context.Context, email, token string) (*adapter.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if strings.EqualFold(t.Email, email) && t.Token == token {
			return t, nil
		}
	}
	return nil, domainerror.ErrInvalidResetToken
}

func (r *fakeTokenRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, id)
	return nil
}

func (r *fakeTokenRepository) Redeem(ctx context.Context, tokenID, userID uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[tokenID]
	if !ok || t.UserID != userID {
		return domainerror.ErrInvalidResetToken
	}
	if err := r.users.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return err
	}
	delete(r.tokens, tokenID)
	return nil
}

func (r *fakeTokenRepository) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, id)
		}
	}
	return nil
}

// claimedAfterLookup lets another reset redeem the token right after it was found.
type claimedAfterLookup struct {
	*fakeTokenRepository
}

func (r claimedAfterLookup) FindByEmailAndToken(ctx context.Context, email, token string) (*adapter.PasswordResetToken, error) {
	found, err := r.fakeTokenRepository.FindByEmailAndToken(ctx, email, token)
	if err != nil {
		return nil, err
	}
	if err := r.Delete(ctx, found.ID); err != nil {
		return nil, err
	}
	return found, nil
}

func (r *fakeTokenRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}

type fixedGenerator struct {
	code string
	err  error
}

func (g fixedGenerator) NumericCode(int) (string, error) {
	return g.code, g.err
}

type recordingEmailService struct {
	inputs []adapter.QueuePasswordResetInput
	err    error
}

func (s *recordingEmailService) QueuePasswordResetEmail(_ context.Context, input adapter.QueuePasswordResetInput) error {
	if s.err != nil {
		return s.err
	}
	s.inputs = append(s.inputs, input)
	return nil
}
