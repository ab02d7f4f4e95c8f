package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/cartline/storefront/go/internal/core/ports"
)

// RateLimitGates groups the per-policy limiter services the routes attach.
type RateLimitGates struct {
	Default ports.RateLimiterService
	Strict  ports.RateLimiterService
	Admin   ports.RateLimiterService
	Auth    ports.RateLimiterService
}

type RateLimitMiddleware struct {
	gates  RateLimitGates
	logger *logrus.Logger
}

func NewRateLimitMiddleware(gates RateLimitGates, logger *logrus.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{gates: gates, logger: logger}
}

func (m *RateLimitMiddleware) Default() echo.MiddlewareFunc { return m.gate(m.gates.Default) }
func (m *RateLimitMiddleware) Strict() echo.MiddlewareFunc  { return m.gate(m.gates.Strict) }
func (m *RateLimitMiddleware) Admin() echo.MiddlewareFunc   { return m.gate(m.gates.Admin) }
func (m *RateLimitMiddleware) Auth() echo.MiddlewareFunc    { return m.gate(m.gates.Auth) }

// gate wires one limiter in front of a handler. The client identity is the
// remote address plus the matched route, so separate endpoints get separate
// windows. Limit/Remaining headers are set on every response; Retry-After
// only on a window overrun.
func (m *RateLimitMiddleware) gate(limiter ports.RateLimiterService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if limiter == nil {
				return next(c)
			}

			route := c.Path()
			if route == "" {
				route = c.Request().URL.Path
			}

			res, err := limiter.Allow(c.Request().Context(), c.RealIP(), route)
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

			if err != nil && m.logger != nil {
				// The decision already reflects the limiter's failure policy;
				// the error is surfaced here for operators only.
				m.logger.WithError(err).WithFields(logrus.Fields{
					"client": c.RealIP(), "route": route, "allowed": res.Allowed,
				}).Warn("rate limiter internal error")
			}

			if !res.Allowed {
				if res.RetryAfter > 0 {
					c.Response().Header().Set("Retry-After", strconv.Itoa(int(res.RetryAfter/time.Second)))
				}
				return echo.NewHTTPError(http.StatusTooManyRequests, res.Message)
			}
			return next(c)
		}
	}
}
