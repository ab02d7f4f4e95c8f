package mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cartline/storefront/go/internal/core/domain/auth"
	"github.com/cartline/storefront/go/internal/core/domain/order"
	"github.com/cartline/storefront/go/internal/core/domain/product"
	"github.com/cartline/storefront/go/internal/core/domain/review"
	"github.com/cartline/storefront/go/internal/core/domain/user"
	"github.com/cartline/storefront/go/internal/core/ports"
)

// ProductRepositoryMock is a lightweight mock for ProductRepository
type ProductRepositoryMock struct {
	CreateFn         func(ctx context.Context, p *product.Product) error
	GetByIDFn        func(ctx context.Context, id uuid.UUID) (*product.Product, error)
	ListFn           func(ctx context.Context, category string, limit, offset int) ([]*product.Product, error)
	ListTopRatedFn   func(ctx context.Context, limit int) ([]*product.Product, error)
	UpdateFn         func(ctx context.Context, p *product.Product) error
	UpdateRatingFn   func(ctx context.Context, id uuid.UUID, rating float64, numReviews int) error
	DecrementStockFn func(ctx context.Context, id uuid.UUID, quantity int) error
	DeleteFn         func(ctx context.Context, id uuid.UUID) error
}

func (m *ProductRepositoryMock) Create(ctx context.Context, p *product.Product) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}
func (m *ProductRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, fmt.Errorf("not found")
}
func (m *ProductRepositoryMock) List(ctx context.Context, category string, limit, offset int) ([]*product.Product, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, category, limit, offset)
	}
	return nil, nil
}
func (m *ProductRepositoryMock) ListTopRated(ctx context.Context, limit int) ([]*product.Product, error) {
	if m.ListTopRatedFn != nil {
		return m.ListTopRatedFn(ctx, limit)
	}
	return nil, nil
}
func (m *ProductRepositoryMock) Update(ctx context.Context, p *product.Product) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, p)
	}
	return nil
}
func (m *ProductRepositoryMock) UpdateRating(ctx context.Context, id uuid.UUID, rating float64, numReviews int) error {
	if m.UpdateRatingFn != nil {
		return m.UpdateRatingFn(ctx, id, rating, numReviews)
	}
	return nil
}
func (m *ProductRepositoryMock) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	if m.DecrementStockFn != nil {
		return m.DecrementStockFn(ctx, id, quantity)
	}
	return nil
}
func (m *ProductRepositoryMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// UserRepositoryMock is a lightweight mock for UserRepository
type UserRepositoryMock struct {
	CreateFn     func(ctx context.Context, u *user.User) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*user.User, error)
	UpdateFn     func(ctx context.Context, u *user.User) error
	DeleteFn     func(ctx context.Context, id uuid.UUID) error
}

func (m *UserRepositoryMock) Create(ctx context.Context, u *user.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}
func (m *UserRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, fmt.Errorf("not found")
}
func (m *UserRepositoryMock) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, fmt.Errorf("not found")
}
func (m *UserRepositoryMock) Update(ctx context.Context, u *user.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, u)
	}
	return nil
}
func (m *UserRepositoryMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// OrderRepositoryMock is a lightweight mock for OrderRepository
type OrderRepositoryMock struct {
	CreateFn       func(ctx context.Context, o *order.Order) error
	GetByIDFn      func(ctx context.Context, id uuid.UUID) (*order.Order, error)
	ListByUserFn   func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*order.Order, error)
	UpdateStatusFn func(ctx context.Context, id uuid.UUID, status order.OrderStatus) error
}

func (m *OrderRepositoryMock) Create(ctx context.Context, o *order.Order) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, o)
	}
	return nil
}
func (m *OrderRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, fmt.Errorf("not found")
}
func (m *OrderRepositoryMock) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*order.Order, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, limit, offset)
	}
	return nil, nil
}
func (m *OrderRepositoryMock) UpdateStatus(ctx context.Context, id uuid.UUID, status order.OrderStatus) error {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status)
	}
	return nil
}

// ReviewRepositoryMock is a lightweight mock for ReviewRepository
type ReviewRepositoryMock struct {
	CreateFn        func(ctx context.Context, r *review.Review) error
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*review.Review, error)
	ListByProductFn func(ctx context.Context, productID uuid.UUID) ([]*review.Review, error)
	DeleteFn        func(ctx context.Context, id uuid.UUID) error
}

func (m *ReviewRepositoryMock) Create(ctx context.Context, r *review.Review) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}
func (m *ReviewRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, fmt.Errorf("not found")
}
func (m *ReviewRepositoryMock) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*review.Review, error) {
	if m.ListByProductFn != nil {
		return m.ListByProductFn(ctx, productID)
	}
	return nil, nil
}
func (m *ReviewRepositoryMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// TokenRepositoryMock is a lightweight mock for TokenRepository
type TokenRepositoryMock struct {
	StoreRefreshTokenFn  func(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
	GetRefreshTokenFn    func(ctx context.Context, token string) (*ports.RefreshToken, error)
	DeleteRefreshTokenFn func(ctx context.Context, token string) error
	DeleteUserTokensFn   func(ctx context.Context, userID uuid.UUID) error
}

func (m *TokenRepositoryMock) StoreRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	if m.StoreRefreshTokenFn != nil {
		return m.StoreRefreshTokenFn(ctx, userID, token, expiresAt)
	}
	return nil
}
func (m *TokenRepositoryMock) GetRefreshToken(ctx context.Context, token string) (*ports.RefreshToken, error) {
	if m.GetRefreshTokenFn != nil {
		return m.GetRefreshTokenFn(ctx, token)
	}
	return nil, fmt.Errorf("not found")
}
func (m *TokenRepositoryMock) DeleteRefreshToken(ctx context.Context, token string) error {
	if m.DeleteRefreshTokenFn != nil {
		return m.DeleteRefreshTokenFn(ctx, token)
	}
	return nil
}
func (m *TokenRepositoryMock) DeleteUserTokens(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteUserTokensFn != nil {
		return m.DeleteUserTokensFn(ctx, userID)
	}
	return nil
}

// EmailServiceMock is a lightweight mock for EmailService
type EmailServiceMock struct {
	SendWelcomeEmailFn      func(ctx context.Context, u *user.User) error
	SendOrderConfirmationFn func(ctx context.Context, u *user.User, o *order.Order) error
}

func (m *EmailServiceMock) SendWelcomeEmail(ctx context.Context, u *user.User) error {
	if m.SendWelcomeEmailFn != nil {
		return m.SendWelcomeEmailFn(ctx, u)
	}
	return nil
}
func (m *EmailServiceMock) SendOrderConfirmation(ctx context.Context, u *user.User, o *order.Order) error {
	if m.SendOrderConfirmationFn != nil {
		return m.SendOrderConfirmationFn(ctx, u, o)
	}
	return nil
}

// AuthServiceMock is a lightweight mock for AuthService
type AuthServiceMock struct {
	LoginFn               func(ctx context.Context, req *auth.LoginRequest) (*auth.TokenPair, error)
	RefreshFn             func(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
	LogoutFn              func(ctx context.Context, refreshToken string) error
	ValidateAccessTokenFn func(tokenString string) (*auth.Claims, error)
}

func (m *AuthServiceMock) Login(ctx context.Context, req *auth.LoginRequest) (*auth.TokenPair, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, req)
	}
	return nil, fmt.Errorf("not implemented")
}
func (m *AuthServiceMock) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	if m.RefreshFn != nil {
		return m.RefreshFn(ctx, refreshToken)
	}
	return nil, fmt.Errorf("not implemented")
}
func (m *AuthServiceMock) Logout(ctx context.Context, refreshToken string) error {
	if m.LogoutFn != nil {
		return m.LogoutFn(ctx, refreshToken)
	}
	return nil
}
func (m *AuthServiceMock) ValidateAccessToken(tokenString string) (*auth.Claims, error) {
	if m.ValidateAccessTokenFn != nil {
		return m.ValidateAccessTokenFn(tokenString)
	}
	return nil, fmt.Errorf("invalid token")
}

// RateLimiterServiceMock is a lightweight mock for RateLimiterService
type RateLimiterServiceMock struct {
	AllowFn func(ctx context.Context, clientAddr, route string) (ports.RateLimitResult, error)
}

func (m *RateLimiterServiceMock) Allow(ctx context.Context, clientAddr, route string) (ports.RateLimitResult, error) {
	if m.AllowFn != nil {
		return m.AllowFn(ctx, clientAddr, route)
	}
	return ports.RateLimitResult{Allowed: true, Limit: 100, Remaining: 99}, nil
}

var (
	_ ports.ProductRepository  = (*ProductRepositoryMock)(nil)
	_ ports.UserRepository     = (*UserRepositoryMock)(nil)
	_ ports.OrderRepository    = (*OrderRepositoryMock)(nil)
	_ ports.ReviewRepository   = (*ReviewRepositoryMock)(nil)
	_ ports.TokenRepository    = (*TokenRepositoryMock)(nil)
	_ ports.EmailService       = (*EmailServiceMock)(nil)
	_ ports.AuthService        = (*AuthServiceMock)(nil)
	_ ports.RateLimiterService = (*RateLimiterServiceMock)(nil)
)
