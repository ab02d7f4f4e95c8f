package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cartline/storefront/go/internal/core/domain/order"
	"github.com/cartline/storefront/go/internal/core/ports"
	"github.com/cartline/storefront/go/internal/infrastructure/db"
)

// OrderRepository implements the order repository interface
type OrderRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(database *db.Database, logger *logrus.Logger) ports.OrderRepository {
	return &OrderRepository{db: database, logger: logger}
}

// Create stores the order and its items in one transaction
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	tx, err := r.db.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	orderQuery := `
		INSERT INTO orders (id, user_id, total_cents, status)
		VALUES ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, orderQuery, o.ID, o.UserID, o.TotalCents, o.Status); err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"order_id": o.ID}).WithError(err).Error("db: failed to create order")
		}
		return fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, quantity, price_cents)
		VALUES ($1, $2, $3, $4, $5)`
	for _, item := range o.Items {
		if _, err := tx.ExecContext(ctx, itemQuery, item.ID, o.ID, item.ProductID, item.Quantity, item.PriceCents); err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}
	return nil
}

// GetByID retrieves an order with its items
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	query := `
		SELECT id, user_id, total_cents, status, created_at, updated_at
		FROM orders
		WHERE id = $1`

	err := r.db.DB.GetContext(ctx, &o, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("order with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get order by ID: %w", err)
	}

	if err := r.loadItems(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// ListByUser retrieves a user's orders, newest first
func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*order.Order, error) {
	var orders []*order.Order
	query := `
		SELECT id, user_id, total_cents, status, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	if err := r.db.DB.SelectContext(ctx, &orders, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	for _, o := range orders {
		if err := r.loadItems(ctx, o); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// UpdateStatus transitions an order's status
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status order.OrderStatus) error {
	query := `UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return requireRowsAffected(result, "order", id)
}

func (r *OrderRepository) loadItems(ctx context.Context, o *order.Order) error {
	var items []order.OrderItem
	query := `
		SELECT id, order_id, product_id, quantity, price_cents
		FROM order_items
		WHERE order_id = $1`

	if err := r.db.DB.SelectContext(ctx, &items, query, o.ID); err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}
	o.Items = items
	return nil
}
