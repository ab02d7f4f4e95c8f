package ports

import (
	"context"

	"github.com/cartline/storefront/go/internal/core/domain/order"
	"github.com/google/uuid"
)

// OrderRepository defines order persistence operations.
type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*order.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status order.OrderStatus) error
}

// OrderService defines order business operations.
type OrderService interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, req *order.CreateOrderRequest) (*order.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*order.Order, error)
	ListUserOrders(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*order.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status order.OrderStatus) (*order.Order, error)
}
