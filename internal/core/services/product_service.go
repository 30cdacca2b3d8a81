package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/foodapp/api/internal/core/domain"
	"github.com/foodapp/api/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type productService struct {
	productRepo  ports.ProductRepository
	categoryRepo ports.CategoryRepository
}

func NewProductService(productRepo ports.ProductRepository, categoryRepo ports.CategoryRepository) ports.ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *productService) List(ctx context.Context, input ports.PageInput) (*ports.ProductPage, error) {
	page, size := normalizePage(input)
	products, total, err := s.productRepo.ListActive(ctx, size, page*size, input.SortBy, input.SortDir)
	if err != nil {
		return nil, err
	}
	return buildPage(products, page, size, total), nil
}

func (s *productService) ListByCategory(ctx context.Context, categoryID uuid.UUID, input ports.PageInput) (*ports.ProductPage, error) {
	page, size := normalizePage(input)
	products, total, err := s.productRepo.ListByCategory(ctx, categoryID, size, page*size)
	if err != nil {
		return nil, err
	}
	return buildPage(products, page, size, total), nil
}

func (s *productService) Search(ctx context.Context, keyword string, input ports.PageInput) (*ports.ProductPage, error) {
	page, size := normalizePage(input)
	products, total, err := s.productRepo.Search(ctx, keyword, size, page*size)
	if err != nil {
		return nil, err
	}
	return buildPage(products, page, size, total), nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

func (s *productService) Create(ctx context.Context, input ports.ProductInput) (*domain.Product, error) {
	category, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrCategoryNotFound
	}

	stock := 0
	if input.Stock != nil {
		stock = *input.Stock
	}
	active := true
	if input.Active != nil {
		active = *input.Active
	}

	product := &domain.Product{
		ID:           uuid.New(),
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price,
		ImageURL:     input.ImageURL,
		Stock:        stock,
		Active:       active,
		CategoryID:   category.ID,
		CategoryName: category.Name,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, input ports.ProductInput) (*domain.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrCategoryNotFound
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.ImageURL = input.ImageURL
	product.CategoryID = category.ID
	product.CategoryName = category.Name
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Active != nil {
		product.Active = *input.Active
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	product.Active = false
	return s.productRepo.Update(ctx, product)
}

func normalizePage(input ports.PageInput) (page, size int) {
	page = input.Page
	if page < 0 {
		page = 0
	}
	size = input.Size
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

func buildPage(products []*domain.Product, page, size int, total int64) *ports.ProductPage {
	totalPages := int((total + int64(size) - 1) / int64(size))
	return &ports.ProductPage{
		Content:       products,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		Last:          page >= totalPages-1,
	}
}
