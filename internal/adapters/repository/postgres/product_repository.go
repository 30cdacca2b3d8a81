package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/foodapp/api/internal/core/domain"
	"github.com/foodapp/api/internal/core/ports"
)

// sortColumns whitelists the client-facing sort keys; anything else falls
// back to name.
var sortColumns = map[string]string{
	"name":      "p.name",
	"price":     "p.price",
	"stock":     "p.stock",
	"createdAt": "p.created_at",
}

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) ports.ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `
	p.id, p.name, p.description, p.price, p.image_url, p.stock, p.active,
	p.category_id, c.name, p.created_at
`

func (r *productRepository) ListActive(ctx context.Context, limit, offset int, sortBy, sortDir string) ([]*domain.Product, int64, error) {
	column, ok := sortColumns[sortBy]
	if !ok {
		column = "p.name"
	}
	direction := "ASC"
	if sortDir == "desc" {
		direction = "DESC"
	}

	total, err := r.count(ctx, `SELECT COUNT(*) FROM products WHERE active = TRUE`)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.active = TRUE
		ORDER BY %s %s
		LIMIT $1 OFFSET $2
	`, productColumns, column, direction)

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products, err := r.scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID, limit, offset int) ([]*domain.Product, int64, error) {
	total, err := r.count(ctx,
		`SELECT COUNT(*) FROM products WHERE category_id = $1 AND active = TRUE`, categoryID)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.category_id = $1 AND p.active = TRUE
		ORDER BY p.name ASC
		LIMIT $2 OFFSET $3
	`, productColumns)

	rows, err := r.db.QueryContext(ctx, query, categoryID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products by category: %w", err)
	}
	defer rows.Close()

	products, err := r.scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) Search(ctx context.Context, keyword string, limit, offset int) ([]*domain.Product, int64, error) {
	pattern := "%" + keyword + "%"

	total, err := r.count(ctx,
		`SELECT COUNT(*) FROM products WHERE active = TRUE AND (name ILIKE $1 OR description ILIKE $1)`, pattern)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.active = TRUE AND (p.name ILIKE $1 OR p.description ILIKE $1)
		ORDER BY p.name ASC
		LIMIT $2 OFFSET $3
	`, productColumns)

	rows, err := r.db.QueryContext(ctx, query, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	products, err := r.scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`, productColumns)

	product := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID, &product.Name, &product.Description, &product.Price,
		&product.ImageURL, &product.Stock, &product.Active,
		&product.CategoryID, &product.CategoryName, &product.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, name, description, price, image_url, stock, active, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query,
		product.ID, product.Name, product.Description, product.Price,
		product.ImageURL, product.Stock, product.Active, product.CategoryID,
	).Scan(&product.CreatedAt)
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, image_url = $5,
			stock = $6, active = $7, category_id = $8
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		product.ID, product.Name, product.Description, product.Price,
		product.ImageURL, product.Stock, product.Active, product.CategoryID,
	)
	return err
}

func (r *productRepository) count(ctx context.Context, query string, args ...any) (int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

func (r *productRepository) scanProducts(rows *sql.Rows) ([]*domain.Product, error) {
	var products []*domain.Product
	for rows.Next() {
		var product domain.Product
		err := rows.Scan(
			&product.ID, &product.Name, &product.Description, &product.Price,
			&product.ImageURL, &product.Stock, &product.Active,
			&product.CategoryID, &product.CategoryName, &product.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, &product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}
