package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cartline/storefront/go/internal/core/domain/review"
	"github.com/cartline/storefront/go/internal/core/ports"
)

type ReviewService struct {
	repo        ports.ReviewRepository
	productRepo ports.ProductRepository
	logger      *logrus.Logger
}

func NewReviewService(repo ports.ReviewRepository, productRepo ports.ProductRepository, logger *logrus.Logger) ports.ReviewService {
	return &ReviewService{repo: repo, productRepo: productRepo, logger: logger}
}

func (s *ReviewService) CreateReview(ctx context.Context, productID, userID uuid.UUID, req *review.CreateReviewRequest) (*review.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return nil, fmt.Errorf("product %s not found", productID)
	}

	r := &review.Review{
		ID:        uuid.New(),
		ProductID: productID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	if err := s.recomputeRating(ctx, productID); err != nil && s.logger != nil {
		s.logger.WithFields(logrus.Fields{"product_id": productID}).WithError(err).Warn("failed to recompute product rating")
	}
	return r, nil
}

func (s *ReviewService) ListProductReviews(ctx context.Context, productID uuid.UUID) ([]*review.Review, error) {
	return s.repo.ListByProduct(ctx, productID)
}

func (s *ReviewService) DeleteReview(ctx context.Context, id, requesterID uuid.UUID, isAdmin bool) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.UserID != requesterID && !isAdmin {
		return fmt.Errorf("review %s does not belong to requester", id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.recomputeRating(ctx, current.ProductID); err != nil && s.logger != nil {
		s.logger.WithFields(logrus.Fields{"product_id": current.ProductID}).WithError(err).Warn("failed to recompute product rating")
	}
	return nil
}

// recomputeRating rederives the product's average rating from its reviews.
func (s *ReviewService) recomputeRating(ctx context.Context, productID uuid.UUID) error {
	reviews, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return err
	}

	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	var avg float64
	if len(reviews) > 0 {
		avg = float64(sum) / float64(len(reviews))
	}
	return s.productRepo.UpdateRating(ctx, productID, avg, len(reviews))
}
