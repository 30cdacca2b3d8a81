package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/foodapp/api/internal/core/domain"
)

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *domain.User) error
}

type UserService interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
