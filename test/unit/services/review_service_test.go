package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	impl "github.com/cartline/storefront/go/internal/application/services"
	"github.com/cartline/storefront/go/internal/core/domain/product"
	"github.com/cartline/storefront/go/internal/core/domain/review"
	tmocks "github.com/cartline/storefront/go/test/mocks"
)

func TestCreateReview_RecomputesProductRating(t *testing.T) {
	productID := uuid.New()

	stored := []*review.Review{
		{ID: uuid.New(), ProductID: productID, Rating: 4},
	}
	rr := &tmocks.ReviewRepositoryMock{
		CreateFn: func(ctx context.Context, r *review.Review) error {
			stored = append(stored, r)
			return nil
		},
		ListByProductFn: func(ctx context.Context, pid uuid.UUID) ([]*review.Review, error) {
			return stored, nil
		},
	}

	var gotRating float64
	var gotCount int
	pr := &tmocks.ProductRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*product.Product, error) {
			return &product.Product{ID: id}, nil
		},
		UpdateRatingFn: func(ctx context.Context, id uuid.UUID, rating float64, numReviews int) error {
			gotRating = rating
			gotCount = numReviews
			return nil
		},
	}

	svc := impl.NewReviewService(rr, pr, logrus.New())
	_, err := svc.CreateReview(context.Background(), productID, uuid.New(), &review.CreateReviewRequest{Rating: 2})
	require.NoError(t, err)
	require.Equal(t, 2, gotCount)
	require.InDelta(t, 3.0, gotRating, 0.001)
}

func TestCreateReview_RejectsOutOfRangeRating(t *testing.T) {
	svc := impl.NewReviewService(&tmocks.ReviewRepositoryMock{}, &tmocks.ProductRepositoryMock{}, logrus.New())

	_, err := svc.CreateReview(context.Background(), uuid.New(), uuid.New(), &review.CreateReviewRequest{Rating: 0})
	require.Error(t, err)

	_, err = svc.CreateReview(context.Background(), uuid.New(), uuid.New(), &review.CreateReviewRequest{Rating: 6})
	require.Error(t, err)
}

func TestDeleteReview_RequiresOwnershipOrAdmin(t *testing.T) {
	owner := uuid.New()
	reviewID := uuid.New()
	rr := &tmocks.ReviewRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*review.Review, error) {
			return &review.Review{ID: id, ProductID: uuid.New(), UserID: owner, Rating: 5}, nil
		},
	}
	pr := &tmocks.ProductRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*product.Product, error) {
			return &product.Product{ID: id}, nil
		},
	}
	svc := impl.NewReviewService(rr, pr, logrus.New())

	err := svc.DeleteReview(context.Background(), reviewID, uuid.New(), false)
	require.Error(t, err)

	err = svc.DeleteReview(context.Background(), reviewID, owner, false)
	require.NoError(t, err)

	err = svc.DeleteReview(context.Background(), reviewID, uuid.New(), true)
	require.NoError(t, err)
}
