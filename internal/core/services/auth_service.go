package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/foodapp/api/internal/core/domain"
	"github.com/foodapp/api/internal/core/ports"
)

type AuthService struct {
	userRepo   ports.UserRepository
	tokenRepo  ports.RefreshTokenRepository
	signer     ports.TokenSigner
	refreshTTL time.Duration
	logger     *slog.Logger
}

func NewAuthService(userRepo ports.UserRepository, tokenRepo ports.RefreshTokenRepository, signer ports.TokenSigner, refreshTTL time.Duration, logger *slog.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		signer:     signer,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || !user.Active {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	result, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "username", user.Username)
	return result, nil
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	taken, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}

	inUse, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if inUse {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Active:       true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Auto-login after registration. The re-verification runs against the
	// freshly stored record so the returned pair reflects exactly what was
	// persisted.
	result, err := s.Login(ctx, input.Username, input.Password)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "username", user.Username)
	return result, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.AuthResult, error) {
	record, err := s.tokenRepo.FindByHash(ctx, s.hashToken(refreshToken))
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}
	if record == nil {
		return nil, domain.ErrInvalidRefreshToken
	}

	if record.ExpiresAt.Before(time.Now()) {
		// Lazy cleanup: the expired record is removed on presentation.
		if err := s.tokenRepo.Delete(ctx, record.ID); err != nil {
			return nil, fmt.Errorf("failed to delete expired refresh token: %w", err)
		}
		return nil, domain.ErrExpiredRefreshToken
	}

	user, err := s.userRepo.GetByID(ctx, record.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		// Consistency fault: the token outlived its owner.
		s.logger.Error("refresh token references missing user", "user_id", record.UserID)
		return nil, domain.ErrInvalidRefreshToken
	}

	// Rotation: CreateForUser deletes the just-used token before inserting
	// the replacement, so every refresh token is single-use.
	return s.issueTokenPair(ctx, user)
}

// Logout removes every refresh token owned by the presenting user. Unknown
// tokens are ignored so the operation stays idempotent.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	record, err := s.tokenRepo.FindByHash(ctx, s.hashToken(refreshToken))
	if err != nil {
		return fmt.Errorf("failed to get refresh token: %w", err)
	}
	if record == nil {
		return nil
	}
	return s.tokenRepo.DeleteForUser(ctx, record.UserID)
}

func (s *AuthService) issueTokenPair(ctx context.Context, user *domain.User) (*ports.AuthResult, error) {
	accessToken, err := s.signer.Issue(user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err := s.generateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	expiresAt := time.Now().Add(s.refreshTTL)
	if _, err := s.tokenRepo.CreateForUser(ctx, user.ID, s.hashToken(refreshToken), expiresAt); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &ports.AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		Username:     user.Username,
		Email:        user.Email,
		Role:         user.Role,
	}, nil
}

func (s *AuthService) generateRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

func (s *AuthService) hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
