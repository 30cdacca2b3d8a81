package ports

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/foodapp/api/internal/core/domain"
)

type ProductRepository interface {
	ListActive(ctx context.Context, limit, offset int, sortBy, sortDir string) ([]*domain.Product, int64, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID, limit, offset int) ([]*domain.Product, int64, error)
	Search(ctx context.Context, keyword string, limit, offset int) ([]*domain.Product, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
}

type ProductInput struct {
	Name        string
	Description string
	Price       json.Number
	ImageURL    string
	Stock       *int
	Active      *bool
	CategoryID  uuid.UUID
}

type PageInput struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

// ProductPage mirrors the paged wire shape expected by the clients.
type ProductPage struct {
	Content       []*domain.Product `json:"content"`
	Page          int               `json:"page"`
	Size          int               `json:"size"`
	TotalElements int64             `json:"totalElements"`
	TotalPages    int               `json:"totalPages"`
	Last          bool              `json:"last"`
}

type ProductService interface {
	List(ctx context.Context, input PageInput) (*ProductPage, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID, input PageInput) (*ProductPage, error)
	Search(ctx context.Context, keyword string, input PageInput) (*ProductPage, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
