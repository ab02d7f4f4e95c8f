package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	impl "github.com/cartline/storefront/go/internal/application/services"
	"github.com/cartline/storefront/go/internal/core/domain/user"
	tmocks "github.com/cartline/storefront/go/test/mocks"
)

func TestRegister_Success(t *testing.T) {
	var created *user.User
	ur := &tmocks.UserRepositoryMock{
		CreateFn: func(ctx context.Context, u *user.User) error {
			created = u
			return nil
		},
	}
	welcomed := false
	es := &tmocks.EmailServiceMock{
		SendWelcomeEmailFn: func(ctx context.Context, u *user.User) error {
			welcomed = true
			return nil
		},
	}

	svc := impl.NewUserService(ur, &tmocks.TokenRepositoryMock{}, es, logrus.New())
	u, err := svc.Register(context.Background(), &user.RegisterRequest{
		Email:     "new@example.com",
		Password:  "TestPass123!",
		FirstName: "A",
		LastName:  "B",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	require.Equal(t, user.RoleCustomer, u.Role)
	require.True(t, u.IsActive)
	require.True(t, welcomed)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("TestPass123!")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ur := &tmocks.UserRepositoryMock{
		GetByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
			return &user.User{Email: email}, nil
		},
	}
	svc := impl.NewUserService(ur, &tmocks.TokenRepositoryMock{}, &tmocks.EmailServiceMock{}, logrus.New())

	_, err := svc.Register(context.Background(), &user.RegisterRequest{
		Email: "taken@example.com", Password: "TestPass123!", FirstName: "A", LastName: "B",
	})
	require.Error(t, err)
}

func TestRegister_WeakPassword(t *testing.T) {
	svc := impl.NewUserService(&tmocks.UserRepositoryMock{}, &tmocks.TokenRepositoryMock{}, &tmocks.EmailServiceMock{}, logrus.New())

	_, err := svc.Register(context.Background(), &user.RegisterRequest{
		Email: "weak@example.com", Password: "short", FirstName: "A", LastName: "B",
	})
	require.Error(t, err)
}

func TestDeactivateUser_RevokesTokens(t *testing.T) {
	userID := uuid.New()
	ur := &tmocks.UserRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*user.User, error) {
			return &user.User{ID: id, IsActive: true}, nil
		},
	}
	revoked := false
	tr := &tmocks.TokenRepositoryMock{
		DeleteUserTokensFn: func(ctx context.Context, id uuid.UUID) error {
			revoked = true
			return nil
		},
	}

	svc := impl.NewUserService(ur, tr, &tmocks.EmailServiceMock{}, logrus.New())
	require.NoError(t, svc.DeactivateUser(context.Background(), userID))
	require.True(t, revoked)
}
