package mocks

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/cartline/storefront/go/internal/core/domain/order"
	"github.com/cartline/storefront/go/internal/core/domain/product"
	"github.com/cartline/storefront/go/internal/core/domain/review"
	"github.com/cartline/storefront/go/internal/core/domain/user"
	"github.com/cartline/storefront/go/internal/core/ports"
)

// UserServiceMock is a lightweight mock for UserService
type UserServiceMock struct {
	RegisterFn       func(ctx context.Context, req *user.RegisterRequest) (*user.User, error)
	GetUserFn        func(ctx context.Context, id uuid.UUID) (*user.User, error)
	UpdateProfileFn  func(ctx context.Context, id uuid.UUID, req *user.UpdateProfileRequest) (*user.User, error)
	DeactivateUserFn func(ctx context.Context, id uuid.UUID) error
}

func (m *UserServiceMock) Register(ctx context.Context, req *user.RegisterRequest) (*user.User, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, req)
	}
	return nil, fmt.Errorf("not implemented")
}
func (m *UserServiceMock) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, id)
	}
	return nil, fmt.Errorf("not found")
}
func (m *UserServiceMock) UpdateProfile(ctx context.Context, id uuid.UUID, req *user.UpdateProfileRequest) (*user.User, error) {
	if m.UpdateProfileFn != nil {
		return m.UpdateProfileFn(ctx, id, req)
	}
	return nil, fmt.Errorf("not implemented")
}
func (m *UserServiceMock) DeactivateUser(ctx context.Context, id uuid.UUID) error {
	if m.DeactivateUserFn != nil {
		return m.DeactivateUserFn(ctx, id)
	}
	return nil
}

// CatalogServiceMock is a lightweight mock for CatalogService
type CatalogServiceMock struct {
	CreateProductFn    func(ctx context.Context, req *product.CreateProductRequest) (*product.Product, error)
	GetProductFn       func(ctx context.Context, id uuid.UUID) (*product.Product, error)
	ListProductsFn     func(ctx context.Context, category string, limit, offset int) ([]*product.Product, error)
	TopRatedProductsFn func(ctx context.Context, limit int) ([]*product.Product, error)
	UpdateProductFn    func(ctx context.Context, id uuid.UUID, req *product.UpdateProductRequest) (*product.Product, error)
	DeleteProductFn    func(ctx context.Context, id uuid.UUID) error
}

func (m *CatalogServiceMock) CreateProduct(ctx context.Context, req *product.CreateProductRequest) (*product.Product, error) {
	if m.CreateProductFn != nil {
		return m.CreateProductFn(ctx, req)
	}
	return nil, fmt.Errorf("not implemented")
}
func (m *CatalogServiceMock) GetProduct(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	if m.GetProductFn != nil {
		return m.GetProductFn(ctx, id)
	}
	return nil, fmt.Errorf("not found")
}
func (m *CatalogServiceMock) ListProducts(ctx context.Context, category string, limit, offset int) ([]*product.Product, error) {
	if m.ListProductsFn != nil {
		return m.ListProductsFn(ctx, category, limit, offset)
	}
	return nil, nil
}
func (m *CatalogServiceMock) TopRatedProducts(ctx context.Context, limit int) ([]*product.Product, error) {
	if m.TopRatedProductsFn != nil {
		return m.TopRatedProductsFn(ctx, limit)
	}
	return nil, nil
}
func (m *CatalogServiceMock) UpdateProduct(ctx context.Context, id uuid.UUID, req *product.UpdateProductRequest) (*product.Product, error) {
	if m.UpdateProductFn != nil {
		return m.UpdateProductFn(ctx, id, req)
	}
	return nil, fmt.Errorf("not implemented")
}
func (m *CatalogServiceMock) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if m.DeleteProductFn != nil {
		return m.DeleteProductFn(ctx, id)
	}
	return nil
}

// OrderServiceMock is a lightweight mock for OrderService
type OrderServiceMock struct {
	PlaceOrderFn     func(ctx context.Context, userID uuid.UUID, req *order.CreateOrderRequest) (*order.Order, error)
	GetOrderFn       func(ctx context.Context, id uuid.UUID) (*order.Order, error)
	ListUserOrdersFn func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*order.Order, error)
	UpdateStatusFn   func(ctx context.Context, id uuid.UUID, status order.OrderStatus) (*order.Order, error)
}

func (m *OrderServiceMock) PlaceOrder(ctx context.Context, userID uuid.UUID, req *order.CreateOrderRequest) (*order.Order, error) {
	if m.PlaceOrderFn != nil {
		return m.PlaceOrderFn(ctx, userID, req)
	}
	return nil, fmt.Errorf("not implemented")
}
func (m *OrderServiceMock) GetOrder(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	if m.GetOrderFn != nil {
		return m.GetOrderFn(ctx, id)
	}
	return nil, fmt.Errorf("not found")
}
func (m *OrderServiceMock) ListUserOrders(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*order.Order, error) {
	if m.ListUserOrdersFn != nil {
		return m.ListUserOrdersFn(ctx, userID, limit, offset)
	}
	return nil, nil
}
func (m *OrderServiceMock) UpdateStatus(ctx context.Context, id uuid.UUID, status order.OrderStatus) (*order.Order, error) {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status)
	}
	return nil, fmt.Errorf("not implemented")
}

// ReviewServiceMock is a lightweight mock for ReviewService
type ReviewServiceMock struct {
	CreateReviewFn       func(ctx context.Context, productID, userID uuid.UUID, req *review.CreateReviewRequest) (*review.Review, error)
	ListProductReviewsFn func(ctx context.Context, productID uuid.UUID) ([]*review.Review, error)
	DeleteReviewFn       func(ctx context.Context, id, requesterID uuid.UUID, isAdmin bool) error
}

func (m *ReviewServiceMock) CreateReview(ctx context.Context, productID, userID uuid.UUID, req *review.CreateReviewRequest) (*review.Review, error) {
	if m.CreateReviewFn != nil {
		return m.CreateReviewFn(ctx, productID, userID, req)
	}
	return nil, fmt.Errorf("not implemented")
}
func (m *ReviewServiceMock) ListProductReviews(ctx context.Context, productID uuid.UUID) ([]*review.Review, error) {
	if m.ListProductReviewsFn != nil {
		return m.ListProductReviewsFn(ctx, productID)
	}
	return nil, nil
}
func (m *ReviewServiceMock) DeleteReview(ctx context.Context, id, requesterID uuid.UUID, isAdmin bool) error {
	if m.DeleteReviewFn != nil {
		return m.DeleteReviewFn(ctx, id, requesterID, isAdmin)
	}
	return nil
}

var (
	_ ports.UserService    = (*UserServiceMock)(nil)
	_ ports.CatalogService = (*CatalogServiceMock)(nil)
	_ ports.OrderService   = (*OrderServiceMock)(nil)
	_ ports.ReviewService  = (*ReviewServiceMock)(nil)
)
