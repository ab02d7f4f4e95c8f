package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	impl "github.com/cartline/storefront/go/internal/application/services"
	"github.com/cartline/storefront/go/internal/core/domain/order"
	"github.com/cartline/storefront/go/internal/core/domain/product"
	"github.com/cartline/storefront/go/internal/core/domain/user"
	tmocks "github.com/cartline/storefront/go/test/mocks"
)

func TestPlaceOrder_Success(t *testing.T) {
	productID := uuid.New()
	userID := uuid.New()

	pr := &tmocks.ProductRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*product.Product, error) {
			return &product.Product{ID: id, Name: "Mug", PriceCents: 1250, Stock: 5}, nil
		},
	}
	var created *order.Order
	or := &tmocks.OrderRepositoryMock{
		CreateFn: func(ctx context.Context, o *order.Order) error {
			created = o
			return nil
		},
	}
	ur := &tmocks.UserRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*user.User, error) {
			return &user.User{ID: id, Email: "buyer@example.com"}, nil
		},
	}
	emailSent := false
	es := &tmocks.EmailServiceMock{
		SendOrderConfirmationFn: func(ctx context.Context, u *user.User, o *order.Order) error {
			emailSent = true
			return nil
		},
	}

	svc := impl.NewOrderService(or, pr, ur, es, logrus.New())
	o, err := svc.PlaceOrder(context.Background(), userID, &order.CreateOrderRequest{
		Items: []order.CreateOrderItem{{ProductID: productID, Quantity: 3}},
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	require.Equal(t, int64(3750), o.TotalCents)
	require.Equal(t, order.StatusPending, o.Status)
	require.Len(t, o.Items, 1)
	require.True(t, emailSent)
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	pr := &tmocks.ProductRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*product.Product, error) {
			return &product.Product{ID: id, PriceCents: 100, Stock: 1}, nil
		},
		DecrementStockFn: func(ctx context.Context, id uuid.UUID, quantity int) error {
			return fmt.Errorf("insufficient stock for product %s", id)
		},
	}
	or := &tmocks.OrderRepositoryMock{
		CreateFn: func(ctx context.Context, o *order.Order) error {
			t.Fatal("order must not be created when stock is insufficient")
			return nil
		},
	}

	svc := impl.NewOrderService(or, pr, &tmocks.UserRepositoryMock{}, nil, logrus.New())
	_, err := svc.PlaceOrder(context.Background(), uuid.New(), &order.CreateOrderRequest{
		Items: []order.CreateOrderItem{{ProductID: uuid.New(), Quantity: 2}},
	})
	require.Error(t, err)
}

func TestPlaceOrder_EmailFailureDoesNotFailOrder(t *testing.T) {
	pr := &tmocks.ProductRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*product.Product, error) {
			return &product.Product{ID: id, PriceCents: 500, Stock: 10}, nil
		},
	}
	or := &tmocks.OrderRepositoryMock{}
	ur := &tmocks.UserRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*user.User, error) {
			return &user.User{ID: id}, nil
		},
	}
	es := &tmocks.EmailServiceMock{
		SendOrderConfirmationFn: func(ctx context.Context, u *user.User, o *order.Order) error {
			return fmt.Errorf("sendgrid down")
		},
	}

	svc := impl.NewOrderService(or, pr, ur, es, logrus.New())
	_, err := svc.PlaceOrder(context.Background(), uuid.New(), &order.CreateOrderRequest{
		Items: []order.CreateOrderItem{{ProductID: uuid.New(), Quantity: 1}},
	})
	require.NoError(t, err)
}

func TestUpdateStatus_RejectsInvalidAndTerminalStates(t *testing.T) {
	orderID := uuid.New()
	or := &tmocks.OrderRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*order.Order, error) {
			return &order.Order{ID: id, Status: order.StatusCancelled}, nil
		},
	}
	svc := impl.NewOrderService(or, &tmocks.ProductRepositoryMock{}, &tmocks.UserRepositoryMock{}, nil, logrus.New())

	_, err := svc.UpdateStatus(context.Background(), orderID, order.OrderStatus("bogus"))
	require.Error(t, err)

	_, err = svc.UpdateStatus(context.Background(), orderID, order.StatusShipped)
	require.Error(t, err)
}

func TestUpdateStatus_Success(t *testing.T) {
	orderID := uuid.New()
	or := &tmocks.OrderRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*order.Order, error) {
			return &order.Order{ID: id, Status: order.StatusPaid}, nil
		},
	}
	svc := impl.NewOrderService(or, &tmocks.ProductRepositoryMock{}, &tmocks.UserRepositoryMock{}, nil, logrus.New())

	o, err := svc.UpdateStatus(context.Background(), orderID, order.StatusShipped)
	require.NoError(t, err)
	require.Equal(t, order.StatusShipped, o.Status)
}
