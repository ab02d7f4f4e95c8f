package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/cartline/storefront/go/internal/core/domain/auth"
	"github.com/cartline/storefront/go/internal/core/domain/order"
	"github.com/cartline/storefront/go/internal/core/domain/product"
	"github.com/cartline/storefront/go/internal/core/domain/user"
	store_http "github.com/cartline/storefront/go/internal/infrastructure/httpserver"
	"github.com/cartline/storefront/go/test/mocks"
)

// testValidator is a no-op validator used in tests to satisfy echo.Validator
type testValidator struct{}

func (v *testValidator) Validate(i interface{}) error { return nil }

func newTestServer(t *testing.T, deps store_http.ServerDeps) *httptest.Server {
	t.Helper()
	srv := store_http.NewServer(&store_http.ServerConfig{
		Host: "127.0.0.1", Port: "0",
		ReadTimeout: time.Second, WriteTimeout: time.Second, IdleTimeout: time.Second,
	}, logrus.New(), deps)
	srv.Echo().Validator = &testValidator{}
	ts := httptest.NewServer(srv.Echo())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, ts *httptest.Server, method, path string, body any, token string) (*http.Response, []byte) {
	t.Helper()
	var b []byte
	if body != nil {
		var err error
		b, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req, err := http.NewRequest(method, ts.URL+path, bytes.NewReader(b))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestAuthEndpoints(t *testing.T) {
	authMock := &mocks.AuthServiceMock{
		LoginFn: func(ctx context.Context, req *auth.LoginRequest) (*auth.TokenPair, error) {
			return &auth.TokenPair{AccessToken: "access-x", RefreshToken: "refresh-x"}, nil
		},
		RefreshFn: func(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
			return &auth.TokenPair{AccessToken: "access-y", RefreshToken: "refresh-y"}, nil
		},
	}
	userMock := &mocks.UserServiceMock{
		RegisterFn: func(ctx context.Context, req *user.RegisterRequest) (*user.User, error) {
			return &user.User{ID: uuid.New(), Email: req.Email, Role: user.RoleCustomer}, nil
		},
	}

	ts := newTestServer(t, store_http.ServerDeps{
		AuthService:    authMock,
		UserService:    userMock,
		CatalogService: &mocks.CatalogServiceMock{},
		OrderService:   &mocks.OrderServiceMock{},
		ReviewService:  &mocks.ReviewServiceMock{},
	})

	resp, body := doJSON(t, ts, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "a@b.com", "password": "TestPass123!", "first_name": "A", "last_name": "B",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Contains(t, string(body), "a@b.com")

	resp, body = doJSON(t, ts, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "a@b.com", "password": "TestPass123!",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "access-x")

	resp, body = doJSON(t, ts, http.MethodPost, "/api/v1/auth/refresh", map[string]string{
		"refresh_token": "refresh-x",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "access-y")
}

func TestProductEndpoints_PublicReadsAndAdminWrites(t *testing.T) {
	productID := uuid.New()
	adminID := uuid.New()
	catalogMock := &mocks.CatalogServiceMock{
		GetProductFn: func(ctx context.Context, id uuid.UUID) (*product.Product, error) {
			return &product.Product{ID: id, Name: "Mug", PriceCents: 1250}, nil
		},
		ListProductsFn: func(ctx context.Context, category string, limit, offset int) ([]*product.Product, error) {
			return []*product.Product{{ID: productID, Name: "Mug"}}, nil
		},
		CreateProductFn: func(ctx context.Context, req *product.CreateProductRequest) (*product.Product, error) {
			return &product.Product{ID: uuid.New(), Name: req.Name, PriceCents: req.PriceCents}, nil
		},
	}
	authMock := &mocks.AuthServiceMock{
		ValidateAccessTokenFn: func(token string) (*auth.Claims, error) {
			if token == "admin-token" {
				return &auth.Claims{UserID: adminID, Role: user.RoleAdmin.String()}, nil
			}
			return &auth.Claims{UserID: uuid.New(), Role: user.RoleCustomer.String()}, nil
		},
	}

	ts := newTestServer(t, store_http.ServerDeps{
		AuthService:    authMock,
		UserService:    &mocks.UserServiceMock{},
		CatalogService: catalogMock,
		OrderService:   &mocks.OrderServiceMock{},
		ReviewService:  &mocks.ReviewServiceMock{},
	})

	// Public read needs no token.
	resp, body := doJSON(t, ts, http.MethodGet, "/api/v1/products/"+productID.String(), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "Mug")

	resp, _ = doJSON(t, ts, http.MethodGet, "/api/v1/products", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Admin create requires the admin role.
	createReq := map[string]any{"name": "Lamp", "price_cents": 9900, "category": "home"}
	resp, _ = doJSON(t, ts, http.MethodPost, "/api/v1/admin/products", createReq, "customer-token")
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = doJSON(t, ts, http.MethodPost, "/api/v1/admin/products", createReq, "admin-token")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Contains(t, string(body), "Lamp")
}

func TestOrderEndpoints_OwnershipEnforced(t *testing.T) {
	ownerID := uuid.New()
	orderID := uuid.New()
	orderMock := &mocks.OrderServiceMock{
		GetOrderFn: func(ctx context.Context, id uuid.UUID) (*order.Order, error) {
			return &order.Order{ID: id, UserID: ownerID, Status: order.StatusPending}, nil
		},
	}
	authMock := &mocks.AuthServiceMock{
		ValidateAccessTokenFn: func(token string) (*auth.Claims, error) {
			switch token {
			case "owner-token":
				return &auth.Claims{UserID: ownerID, Role: user.RoleCustomer.String()}, nil
			default:
				return &auth.Claims{UserID: uuid.New(), Role: user.RoleCustomer.String()}, nil
			}
		},
	}

	ts := newTestServer(t, store_http.ServerDeps{
		AuthService:    authMock,
		UserService:    &mocks.UserServiceMock{},
		CatalogService: &mocks.CatalogServiceMock{},
		OrderService:   orderMock,
		ReviewService:  &mocks.ReviewServiceMock{},
	})

	resp, _ := doJSON(t, ts, http.MethodGet, "/api/v1/orders/"+orderID.String(), nil, "owner-token")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, ts, http.MethodGet, "/api/v1/orders/"+orderID.String(), nil, "stranger-token")
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, ts, http.MethodGet, "/api/v1/orders/"+orderID.String(), nil, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
