package ports

import (
	"context"
	"time"

	"github.com/cartline/storefront/go/internal/core/domain/auth"
	"github.com/google/uuid"
)

// RefreshToken is a stored refresh token record.
type RefreshToken struct {
	UserID    uuid.UUID `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenRepository stores refresh tokens (Redis-backed, TTL-expired).
type TokenRepository interface {
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, token string) (*RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, token string) error
	DeleteUserTokens(ctx context.Context, userID uuid.UUID) error
}

// AuthService defines authentication operations.
type AuthService interface {
	Login(ctx context.Context, req *auth.LoginRequest) (*auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	ValidateAccessToken(tokenString string) (*auth.Claims, error)
}
