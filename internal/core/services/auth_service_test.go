package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/foodapp/api/internal/adapters/token/jwt"
	"github.com/foodapp/api/internal/core/domain"
	"github.com/foodapp/api/internal/core/ports"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copy := *u
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copy := *u
	return &copy, nil
}

func (r *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	u, _ := r.GetByUsername(ctx, username)
	return u != nil, nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	copy := *user
	r.users[user.ID] = &copy
	return nil
}

type fakeTokenRepo struct {
	tokens map[uuid.UUID]*domain.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[uuid.UUID]*domain.RefreshToken)}
}

func (r *fakeTokenRepo) FindByHash(_ context.Context, tokenHash string) (*domain.RefreshToken, error) {
	for _, t := range r.tokens {
		if t.TokenHash == tokenHash {
			copy := *t
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *fakeTokenRepo) CreateForUser(_ context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*domain.RefreshToken, error) {
	for id, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, id)
		}
	}
	token := &domain.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	r.tokens[token.ID] = token
	copy := *token
	return &copy, nil
}

func (r *fakeTokenRepo) DeleteForUser(_ context.Context, userID uuid.UUID) error {
	for id, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, id)
		}
	}
	return nil
}

func (r *fakeTokenRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.tokens, id)
	return nil
}

func (r *fakeTokenRepo) countForUser(userID uuid.UUID) int {
	count := 0
	for _, t := range r.tokens {
		if t.UserID == userID {
			count++
		}
	}
	return count
}

type authFixture struct {
	svc       *AuthService
	userRepo  *fakeUserRepo
	tokenRepo *fakeTokenRepo
	signer    ports.TokenSigner
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeTokenRepo()
	signer := jwt.NewSigner("test-secret", 15*time.Minute)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &authFixture{
		svc:       NewAuthService(userRepo, tokenRepo, signer, 7*24*time.Hour, logger),
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		signer:    signer,
	}
}

func (f *authFixture) seedUser(t *testing.T, username, email, password, role string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}
	require.NoError(t, f.userRepo.Create(context.Background(), user))
	return user
}

func TestLogin_ReturnsTokensWithStoredRole(t *testing.T) {
	f := newAuthFixture(t)
	user := f.seedUser(t, "bob", "bob@example.com", "secret123", domain.RoleAdmin)

	result, err := f.svc.Login(context.Background(), "bob", "secret123")
	require.NoError(t, err)

	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, "bob", result.Username)
	assert.Equal(t, "bob@example.com", result.Email)
	assert.Equal(t, domain.RoleAdmin, result.Role)

	claims, err := f.signer.Parse(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "bob", claims.Username)
	assert.Equal(t, domain.RoleAdmin, claims.Role)

	record, err := f.tokenRepo.FindByHash(context.Background(), f.svc.hashToken(result.RefreshToken))
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, user.ID, record.UserID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "bob", "bob@example.com", "secret123", domain.RoleUser)

	_, err := f.svc.Login(context.Background(), "bob", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = f.svc.Login(context.Background(), "nobody", "secret123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_ExactlyOneRefreshTokenPerUser(t *testing.T) {
	f := newAuthFixture(t)
	user := f.seedUser(t, "bob", "bob@example.com", "secret123", domain.RoleUser)

	// A second login (e.g. from another device) replaces the first token.
	first, err := f.svc.Login(context.Background(), "bob", "secret123")
	require.NoError(t, err)
	second, err := f.svc.Login(context.Background(), "bob", "secret123")
	require.NoError(t, err)

	assert.Equal(t, 1, f.tokenRepo.countForUser(user.ID))

	stale, err := f.tokenRepo.FindByHash(context.Background(), f.svc.hashToken(first.RefreshToken))
	require.NoError(t, err)
	assert.Nil(t, stale)

	live, err := f.tokenRepo.FindByHash(context.Background(), f.svc.hashToken(second.RefreshToken))
	require.NoError(t, err)
	assert.NotNil(t, live)
}

func TestRegister_Conflicts(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "bob", "bob@example.com", "secret123", domain.RoleUser)

	_, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Username: "bob",
		Email:    "other@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	_, err = f.svc.Register(context.Background(), ports.RegisterInput{
		Username: "carol",
		Email:    "bob@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	// Nothing was persisted by the failed attempts.
	assert.Len(t, f.userRepo.users, 1)
	assert.Len(t, f.tokenRepo.tokens, 0)
}

func TestRegister_AutoLoginWithDefaultRole(t *testing.T) {
	f := newAuthFixture(t)

	result, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RoleUser, result.Role)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)

	claims, err := f.signer.Parse(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, claims.Role)

	// The stored hash verifies the plain password.
	user, err := f.userRepo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
}

func TestRefresh_RotatesAndInvalidatesOldToken(t *testing.T) {
	f := newAuthFixture(t)

	first, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.Equal(t, domain.RoleUser, first.Role)

	second, err := f.svc.Refresh(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.NotEmpty(t, second.AccessToken)

	// The used token is gone from the store.
	record, err := f.tokenRepo.FindByHash(context.Background(), f.svc.hashToken(first.RefreshToken))
	require.NoError(t, err)
	assert.Nil(t, record)

	// Presenting it again fails: refresh tokens are single-use.
	_, err = f.svc.Refresh(context.Background(), first.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrInvalidRefreshToken)

	// The rotated replacement still works.
	third, err := f.svc.Refresh(context.Background(), second.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, second.RefreshToken, third.RefreshToken)
}

func TestRefresh_UnknownToken(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Refresh(context.Background(), "never-issued-token")
	assert.ErrorIs(t, err, domain.ErrInvalidRefreshToken)
}

func TestRefresh_ExpiredTokenIsDeleted(t *testing.T) {
	f := newAuthFixture(t)
	user := f.seedUser(t, "bob", "bob@example.com", "secret123", domain.RoleUser)

	result, err := f.svc.Login(context.Background(), "bob", "secret123")
	require.NoError(t, err)

	// Force the stored record past its expiry.
	for _, token := range f.tokenRepo.tokens {
		if token.UserID == user.ID {
			token.ExpiresAt = time.Now().Add(-time.Minute)
		}
	}

	_, err = f.svc.Refresh(context.Background(), result.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrExpiredRefreshToken)

	// Lazy deletion: a subsequent lookup finds nothing.
	record, err := f.tokenRepo.FindByHash(context.Background(), f.svc.hashToken(result.RefreshToken))
	require.NoError(t, err)
	assert.Nil(t, record)

	_, err = f.svc.Refresh(context.Background(), result.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrInvalidRefreshToken)
}

func TestLogout_DeletesTokensAndIsIdempotent(t *testing.T) {
	f := newAuthFixture(t)
	user := f.seedUser(t, "bob", "bob@example.com", "secret123", domain.RoleUser)

	result, err := f.svc.Login(context.Background(), "bob", "secret123")
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(context.Background(), result.RefreshToken))
	assert.Equal(t, 0, f.tokenRepo.countForUser(user.ID))

	// A second logout with the same token is a no-op.
	require.NoError(t, f.svc.Logout(context.Background(), result.RefreshToken))

	_, err = f.svc.Refresh(context.Background(), result.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrInvalidRefreshToken)
}

func TestRefresh_MissingOwnerTreatedAsInvalid(t *testing.T) {
	f := newAuthFixture(t)
	user := f.seedUser(t, "bob", "bob@example.com", "secret123", domain.RoleUser)

	result, err := f.svc.Login(context.Background(), "bob", "secret123")
	require.NoError(t, err)

	delete(f.userRepo.users, user.ID)

	_, err = f.svc.Refresh(context.Background(), result.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrInvalidRefreshToken)
}
