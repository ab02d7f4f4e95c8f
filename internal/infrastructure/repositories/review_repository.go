package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cartline/storefront/go/internal/core/domain/review"
	"github.com/cartline/storefront/go/internal/core/ports"
	"github.com/cartline/storefront/go/internal/infrastructure/db"
)

// ReviewRepository implements the review repository interface
type ReviewRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(database *db.Database, logger *logrus.Logger) ports.ReviewRepository {
	return &ReviewRepository{db: database, logger: logger}
}

// Create creates a new review
func (r *ReviewRepository) Create(ctx context.Context, rev *review.Review) error {
	query := `
		INSERT INTO reviews (id, product_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.DB.ExecContext(ctx, query, rev.ID, rev.ProductID, rev.UserID, rev.Rating, rev.Comment)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"review_id": rev.ID, "product_id": rev.ProductID}).WithError(err).Error("db: failed to create review")
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// GetByID retrieves a review by ID
func (r *ReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	var rev review.Review
	query := `
		SELECT id, product_id, user_id, rating, comment, created_at, updated_at
		FROM reviews
		WHERE id = $1`

	err := r.db.DB.GetContext(ctx, &rev, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("review with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get review by ID: %w", err)
	}

	return &rev, nil
}

// ListByProduct retrieves all reviews for a product, newest first
func (r *ReviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*review.Review, error) {
	var reviews []*review.Review
	query := `
		SELECT id, product_id, user_id, rating, comment, created_at, updated_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC`

	if err := r.db.DB.SelectContext(ctx, &reviews, query, productID); err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return reviews, nil
}

// Delete removes a review
func (r *ReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return requireRowsAffected(result, "review", id)
}
