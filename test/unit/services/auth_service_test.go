package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	config "github.com/cartline/storefront/go/configs"
	impl "github.com/cartline/storefront/go/internal/application/services"
	"github.com/cartline/storefront/go/internal/core/domain/auth"
	"github.com/cartline/storefront/go/internal/core/domain/user"
	"github.com/cartline/storefront/go/internal/core/ports"
	tmocks "github.com/cartline/storefront/go/test/mocks"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		Secret:          "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	}
}

func activeUser(password string) *user.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &user.User{
		ID:           uuid.New(),
		Email:        "u@example.com",
		PasswordHash: string(hash),
		Role:         user.RoleCustomer,
		IsActive:     true,
	}
}

func TestLogin_SuccessIssuesValidatableToken(t *testing.T) {
	u := activeUser("TestPass123!")
	ur := &tmocks.UserRepositoryMock{
		GetByEmailFn: func(ctx context.Context, email string) (*user.User, error) { return u, nil },
	}
	tr := &tmocks.TokenRepositoryMock{}

	svc := impl.NewAuthService(ur, tr, testJWTConfig(), logrus.New())
	tokens, err := svc.Login(context.Background(), &auth.LoginRequest{Email: u.Email, Password: "TestPass123!"})
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)

	claims, err := svc.ValidateAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.UserID)
	require.Equal(t, u.Role.String(), claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	u := activeUser("TestPass123!")
	ur := &tmocks.UserRepositoryMock{
		GetByEmailFn: func(ctx context.Context, email string) (*user.User, error) { return u, nil },
	}

	svc := impl.NewAuthService(ur, &tmocks.TokenRepositoryMock{}, testJWTConfig(), logrus.New())
	_, err := svc.Login(context.Background(), &auth.LoginRequest{Email: u.Email, Password: "nope"})
	require.Error(t, err)
}

func TestLogin_DisabledAccount(t *testing.T) {
	u := activeUser("TestPass123!")
	u.IsActive = false
	ur := &tmocks.UserRepositoryMock{
		GetByEmailFn: func(ctx context.Context, email string) (*user.User, error) { return u, nil },
	}

	svc := impl.NewAuthService(ur, &tmocks.TokenRepositoryMock{}, testJWTConfig(), logrus.New())
	_, err := svc.Login(context.Background(), &auth.LoginRequest{Email: u.Email, Password: "TestPass123!"})
	require.Error(t, err)
}

func TestRefresh_ExpiredTokenIsRejectedAndDeleted(t *testing.T) {
	deleted := false
	tr := &tmocks.TokenRepositoryMock{
		GetRefreshTokenFn: func(ctx context.Context, token string) (*ports.RefreshToken, error) {
			return &ports.RefreshToken{UserID: uuid.New(), Token: token, ExpiresAt: time.Now().Add(-time.Hour)}, nil
		},
		DeleteRefreshTokenFn: func(ctx context.Context, token string) error {
			deleted = true
			return nil
		},
	}

	svc := impl.NewAuthService(&tmocks.UserRepositoryMock{}, tr, testJWTConfig(), logrus.New())
	_, err := svc.Refresh(context.Background(), "stale")
	require.Error(t, err)
	require.True(t, deleted)
}

func TestRefresh_RotatesToken(t *testing.T) {
	u := activeUser("TestPass123!")
	deletedTokens := []string{}
	tr := &tmocks.TokenRepositoryMock{
		GetRefreshTokenFn: func(ctx context.Context, token string) (*ports.RefreshToken, error) {
			return &ports.RefreshToken{UserID: u.ID, Token: token, ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
		DeleteRefreshTokenFn: func(ctx context.Context, token string) error {
			deletedTokens = append(deletedTokens, token)
			return nil
		},
	}
	ur := &tmocks.UserRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*user.User, error) { return u, nil },
	}

	svc := impl.NewAuthService(ur, tr, testJWTConfig(), logrus.New())
	tokens, err := svc.Refresh(context.Background(), "old-token")
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.Contains(t, deletedTokens, "old-token")
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	svc := impl.NewAuthService(&tmocks.UserRepositoryMock{}, &tmocks.TokenRepositoryMock{}, testJWTConfig(), logrus.New())
	_, err := svc.ValidateAccessToken("not-a-jwt")
	require.Error(t, err)
}
