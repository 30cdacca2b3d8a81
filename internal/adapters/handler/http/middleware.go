package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/foodapp/api/internal/core/domain"
	"github.com/foodapp/api/internal/core/ports"
)

type contextKey string

// ClaimsKey carries the verified access claims of the current request.
const ClaimsKey contextKey = "claims"

// JWTAuth rejects requests without a valid Bearer access token and stores the
// verified claims in the request context.
func JWTAuth(signer ports.TokenSigner) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				respondError(w, http.StatusUnauthorized, "invalid authorization header")
				return
			}

			claims, err := signer.Parse(tokenString)
			if err != nil {
				respondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole guards a route group behind a role claim. Must run after
// JWTAuth.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := r.Context().Value(ClaimsKey).(*domain.AccessClaims)
			if !ok {
				respondError(w, http.StatusUnauthorized, "missing user context")
				return
			}
			if claims.Role != role {
				respondError(w, http.StatusForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
