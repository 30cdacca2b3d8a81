package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/foodapp/api/internal/core/domain"
)

type CategoryRepository interface {
	GetAllActive(ctx context.Context) ([]*domain.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
}

type CategoryInput struct {
	Name        string
	Description string
	ImageURL    string
	Active      *bool
}

type CategoryService interface {
	GetAll(ctx context.Context) ([]*domain.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	Create(ctx context.Context, input CategoryInput) (*domain.Category, error)
	Update(ctx context.Context, id uuid.UUID, input CategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
