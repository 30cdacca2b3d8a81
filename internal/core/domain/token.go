package domain

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is the persisted record of a long-lived opaque credential.
// Only the SHA-256 hash of the token value is stored; the plain value is
// returned to the client once and never kept server-side.
type RefreshToken struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// AccessClaims are the identity claims carried by a verified access token.
type AccessClaims struct {
	Username string
	Role     string
}
