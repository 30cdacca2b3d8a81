package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/foodapp/api/internal/core/domain"
	"github.com/foodapp/api/internal/core/ports"
)

type categoryService struct {
	repo ports.CategoryRepository
}

func NewCategoryService(repo ports.CategoryRepository) ports.CategoryService {
	return &categoryService{
		repo: repo,
	}
}

func (s *categoryService) GetAll(ctx context.Context) ([]*domain.Category, error) {
	return s.repo.GetAllActive(ctx)
}

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrCategoryNotFound
	}
	return category, nil
}

func (s *categoryService) Create(ctx context.Context, input ports.CategoryInput) (*domain.Category, error) {
	active := true
	if input.Active != nil {
		active = *input.Active
	}

	category := &domain.Category{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Active:      active,
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, input ports.CategoryInput) (*domain.Category, error) {
	category, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = input.Name
	category.Description = input.Description
	category.ImageURL = input.ImageURL
	if input.Active != nil {
		category.Active = *input.Active
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	category, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Soft delete: categories are deactivated, never removed.
	category.Active = false
	return s.repo.Update(ctx, category)
}
