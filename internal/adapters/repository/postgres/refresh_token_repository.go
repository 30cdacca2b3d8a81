package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/foodapp/api/internal/core/domain"
	"github.com/foodapp/api/internal/core/ports"
)

type RefreshTokenRepository struct {
	db *sql.DB
}

func NewRefreshTokenRepository(db *sql.DB) ports.RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	query := `
		SELECT id, user_id, token_hash, expires_at, created_at
		FROM refresh_tokens
		WHERE token_hash = $1
	`
	token := &domain.RefreshToken{}
	err := r.db.QueryRowContext(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.UserID,
		&token.TokenHash,
		&token.ExpiresAt,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return token, nil
}

// CreateForUser enforces the one-active-token-per-user invariant. The
// transaction first locks the owning users row, so concurrent creations for
// the same user serialize and each delete sees the previous insert; the
// UNIQUE (user_id) constraint on refresh_tokens backs the invariant at the
// schema level.
func (r *RefreshTokenRepository) CreateForUser(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*domain.RefreshToken, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var ownerID uuid.UUID
	lockQuery := `SELECT id FROM users WHERE id = $1 FOR UPDATE`
	if err := tx.QueryRowContext(ctx, lockQuery, userID).Scan(&ownerID); err != nil {
		return nil, fmt.Errorf("failed to lock user for token rotation: %w", err)
	}

	deleteQuery := `DELETE FROM refresh_tokens WHERE user_id = $1`
	if _, err := tx.ExecContext(ctx, deleteQuery, userID); err != nil {
		return nil, fmt.Errorf("failed to delete prior refresh tokens: %w", err)
	}

	token := &domain.RefreshToken{
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
	}
	insertQuery := `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err = tx.QueryRowContext(ctx, insertQuery, userID, tokenHash, expiresAt).Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert refresh token: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return token, nil
}

func (r *RefreshTokenRepository) DeleteForUser(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM refresh_tokens WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

func (r *RefreshTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM refresh_tokens WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
