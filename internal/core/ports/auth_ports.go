package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/foodapp/api/internal/core/domain"
)

// RefreshTokenRepository is the durable record of the single active refresh
// token per user. Business rules (expiry, rotation) live in the auth service.
type RefreshTokenRepository interface {
	// FindByHash returns (nil, nil) when no record matches.
	FindByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	// CreateForUser deletes every token owned by userID and inserts the new
	// record in a single transaction.
	CreateForUser(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*domain.RefreshToken, error)
	DeleteForUser(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TokenSigner produces and verifies signed access tokens.
type TokenSigner interface {
	Issue(username, role string) (string, error)
	Parse(token string) (*domain.AccessClaims, error)
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// AuthResult is the token pair plus denormalized profile returned by every
// successful auth operation.
type AuthResult struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         string `json:"role"`
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, refreshToken string) error
}
