package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cartline/storefront/go/internal/core/domain/order"
	"github.com/cartline/storefront/go/internal/core/ports"
)

type OrderService struct {
	repo         ports.OrderRepository
	productRepo  ports.ProductRepository
	userRepo     ports.UserRepository
	emailService ports.EmailService
	logger       *logrus.Logger
}

func NewOrderService(repo ports.OrderRepository, productRepo ports.ProductRepository, userRepo ports.UserRepository, emailService ports.EmailService, logger *logrus.Logger) ports.OrderService {
	return &OrderService{
		repo:         repo,
		productRepo:  productRepo,
		userRepo:     userRepo,
		emailService: emailService,
		logger:       logger,
	}
}

func (s *OrderService) PlaceOrder(ctx context.Context, userID uuid.UUID, req *order.CreateOrderRequest) (*order.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}

	orderID := uuid.New()
	items := make([]order.OrderItem, 0, len(req.Items))
	var totalCents int64

	// Price each line from the current catalog; stock is decremented per
	// line with the repository refusing to oversell.
	for _, line := range req.Items {
		p, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %s not found", line.ProductID)
		}
		if err := s.productRepo.DecrementStock(ctx, p.ID, line.Quantity); err != nil {
			return nil, err
		}

		items = append(items, order.OrderItem{
			ID:         uuid.New(),
			OrderID:    orderID,
			ProductID:  p.ID,
			Quantity:   line.Quantity,
			PriceCents: p.PriceCents,
		})
		totalCents += p.PriceCents * int64(line.Quantity)
	}

	o := &order.Order{
		ID:         orderID,
		UserID:     userID,
		Items:      items,
		TotalCents: totalCents,
		Status:     order.StatusPending,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.sendConfirmation(ctx, o)

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"order_id":    o.ID,
			"user_id":     userID,
			"total_cents": totalCents,
		}).Info("order placed")
	}
	return o, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *OrderService) ListUserOrders(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*order.Order, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status order.OrderStatus) (*order.Order, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid order status %q", status)
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == order.StatusCancelled || current.Status == order.StatusDelivered {
		return nil, fmt.Errorf("order %s is already %s", id, current.Status)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	current.Status = status
	current.UpdatedAt = time.Now()
	return current, nil
}

// sendConfirmation emails the buyer; failures are logged, never surfaced.
func (s *OrderService) sendConfirmation(ctx context.Context, o *order.Order) {
	if s.emailService == nil || s.userRepo == nil {
		return
	}
	buyer, err := s.userRepo.GetByID(ctx, o.UserID)
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"order_id": o.ID, "user_id": o.UserID}).WithError(err).Warn("failed to load buyer for order confirmation")
		}
		return
	}
	if err := s.emailService.SendOrderConfirmation(ctx, buyer, o); err != nil && s.logger != nil {
		s.logger.WithFields(logrus.Fields{"order_id": o.ID}).WithError(err).Warn("failed to send order confirmation email")
	}
}
