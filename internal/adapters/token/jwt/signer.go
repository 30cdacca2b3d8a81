package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/foodapp/api/internal/core/domain"
	"github.com/foodapp/api/internal/core/ports"
)

type claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Signer issues and verifies HS256 access tokens. It holds the process-wide
// signing secret and the configured access-token lifetime.
type Signer struct {
	secret    []byte
	accessTTL time.Duration
}

func NewSigner(secret string, accessTTL time.Duration) ports.TokenSigner {
	return &Signer{
		secret:    []byte(secret),
		accessTTL: accessTTL,
	}
}

func (s *Signer) Issue(username, role string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
		Role: role,
	})
	return token.SignedString(s.secret)
}

func (s *Signer) Parse(tokenString string) (*domain.AccessClaims, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return &domain.AccessClaims{
		Username: c.Subject,
		Role:     c.Role,
	}, nil
}
