package ports

import (
	"context"

	"github.com/cartline/storefront/go/internal/core/domain/review"
	"github.com/google/uuid"
)

// ReviewRepository defines review persistence operations.
type ReviewRepository interface {
	Create(ctx context.Context, r *review.Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*review.Review, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*review.Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReviewService defines review business operations.
type ReviewService interface {
	CreateReview(ctx context.Context, productID, userID uuid.UUID, req *review.CreateReviewRequest) (*review.Review, error)
	ListProductReviews(ctx context.Context, productID uuid.UUID) ([]*review.Review, error)
	// DeleteReview removes a review; only its author or an admin may do so.
	DeleteReview(ctx context.Context, id, requesterID uuid.UUID, isAdmin bool) error
}
