package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cartline/storefront/go/internal/core/domain/product"
	"github.com/cartline/storefront/go/internal/core/ports"
	"github.com/cartline/storefront/go/internal/infrastructure/db"
)

// ProductRepository implements the product repository interface
type ProductRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(database *db.Database, logger *logrus.Logger) ports.ProductRepository {
	return &ProductRepository{db: database, logger: logger}
}

// Create creates a new product
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	query := `
		INSERT INTO products (id, name, description, price_cents, stock, category, rating, num_reviews)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.DB.ExecContext(ctx, query,
		p.ID, p.Name, p.Description, p.PriceCents, p.Stock, p.Category, p.Rating, p.NumReviews)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"product_id": p.ID}).WithError(err).Error("db: failed to create product")
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetByID retrieves a product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	var p product.Product
	query := `
		SELECT id, name, description, price_cents, stock, category, rating, num_reviews, created_at, updated_at
		FROM products
		WHERE id = $1`

	err := r.db.DB.GetContext(ctx, &p, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("product with ID %s not found", id)
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"product_id": id}).WithError(err).Error("db: failed to get product by ID")
		}
		return nil, fmt.Errorf("failed to get product by ID: %w", err)
	}

	return &p, nil
}

// List retrieves products, optionally filtered by category
func (r *ProductRepository) List(ctx context.Context, category string, limit, offset int) ([]*product.Product, error) {
	var products []*product.Product
	var err error

	if category != "" {
		query := `
			SELECT id, name, description, price_cents, stock, category, rating, num_reviews, created_at, updated_at
			FROM products WHERE category = $1
			ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		err = r.db.DB.SelectContext(ctx, &products, query, category, limit, offset)
	} else {
		query := `
			SELECT id, name, description, price_cents, stock, category, rating, num_reviews, created_at, updated_at
			FROM products
			ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		err = r.db.DB.SelectContext(ctx, &products, query, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

// ListTopRated retrieves the highest-rated products with at least one review
func (r *ProductRepository) ListTopRated(ctx context.Context, limit int) ([]*product.Product, error) {
	var products []*product.Product
	query := `
		SELECT id, name, description, price_cents, stock, category, rating, num_reviews, created_at, updated_at
		FROM products
		WHERE num_reviews > 0
		ORDER BY rating DESC, num_reviews DESC LIMIT $1`

	if err := r.db.DB.SelectContext(ctx, &products, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list top rated products: %w", err)
	}

	return products, nil
}

// Update updates an existing product
func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price_cents = $4, stock = $5, category = $6, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query,
		p.ID, p.Name, p.Description, p.PriceCents, p.Stock, p.Category)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return requireRowsAffected(result, "product", p.ID)
}

// UpdateRating stores a recomputed product rating
func (r *ProductRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating float64, numReviews int) error {
	query := `UPDATE products SET rating = $2, num_reviews = $3, updated_at = NOW() WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, id, rating, numReviews)
	if err != nil {
		return fmt.Errorf("failed to update product rating: %w", err)
	}
	return requireRowsAffected(result, "product", id)
}

// DecrementStock atomically reduces stock, refusing to oversell
func (r *ProductRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	query := `UPDATE products SET stock = stock - $2, updated_at = NOW() WHERE id = $1 AND stock >= $2`

	result, err := r.db.DB.ExecContext(ctx, query, id, quantity)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("insufficient stock for product %s", id)
	}
	return nil
}

// Delete removes a product
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return requireRowsAffected(result, "product", id)
}

func requireRowsAffected(result sql.Result, entity string, id uuid.UUID) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%s with ID %s not found", entity, id)
	}
	return nil
}
