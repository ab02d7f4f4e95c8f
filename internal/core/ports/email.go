package ports

import (
	"context"

	"github.com/cartline/storefront/go/internal/core/domain/order"
	"github.com/cartline/storefront/go/internal/core/domain/user"
)

// EmailService sends transactional storefront mail. Implementations should be
// best-effort from the caller's perspective: a failed mail must not fail the
// order.
type EmailService interface {
	SendWelcomeEmail(ctx context.Context, u *user.User) error
	SendOrderConfirmation(ctx context.Context, u *user.User, o *order.Order) error
}
