package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/cartline/storefront/go/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// FailMode decides what happens to a request when the limiter itself fails
// (cache error, corrupt record). FailClosed rejects: a transient cache
// malfunction blocks traffic rather than silently disabling protection.
type FailMode int

const (
	FailClosed FailMode = iota
	FailOpen
)

// RateLimitPolicy is an immutable named limiter configuration.
type RateLimitPolicy struct {
	Name            string
	Window          time.Duration
	MaxRequests     int
	Message         string
	OnInternalError FailMode
}

// Predefined policies. Wiring may override Window/MaxRequests from config;
// callers may also supply ad hoc RateLimitPolicy literals.
var (
	DefaultPolicy = RateLimitPolicy{
		Name:        "default",
		Window:      15 * time.Minute,
		MaxRequests: 100,
		Message:     "Too many requests from this IP, please try again later.",
	}
	StrictPolicy = RateLimitPolicy{
		Name:        "strict",
		Window:      15 * time.Minute,
		MaxRequests: 10,
		Message:     "Too many requests for this operation, please slow down.",
	}
	AdminPolicy = RateLimitPolicy{
		Name:        "admin",
		Window:      15 * time.Minute,
		MaxRequests: 300,
		Message:     "Too many admin requests, please try again later.",
	}
	AuthPolicy = RateLimitPolicy{
		Name:        "auth",
		Window:      15 * time.Minute,
		MaxRequests: 5,
		Message:     "Too many authentication attempts, please try again later.",
	}
)

// rateLimitRecord is the per-(client, route) fixed-window counter, stored as
// a cache entry whose TTL matches the window.
type rateLimitRecord struct {
	Count            int       `json:"count"`
	FirstRequestTime time.Time `json:"first_request_time"`
}

// RateLimiterService implements fixed-window rate limiting over the cache
// namespace bound at construction (conventionally "rate-limit").
//
// The get → compute → persist sequence is deliberately NOT one atomic cache
// operation. Two concurrent requests from the same client can read the same
// pre-increment record: one increment is then lost (the limiter over-admits
// by a small margin), or the pair collides on the delete/insert and the loser
// is handled by the failure policy. This is the documented, bounded-risk
// contract; closing the race would need an atomic increment primitive.
type RateLimiterService struct {
	cache  ports.Cache
	policy RateLimitPolicy
	now    func() time.Time
	logger *logrus.Logger
}

// NewRateLimiterService creates a limiter gating with policy. clock may be
// nil, defaulting to time.Now.
func NewRateLimiterService(cache ports.Cache, policy RateLimitPolicy, clock func() time.Time, logger *logrus.Logger) *RateLimiterService {
	if clock == nil {
		clock = time.Now
	}
	if policy.Window <= 0 {
		policy.Window = DefaultPolicy.Window
	}
	if policy.MaxRequests <= 0 {
		policy.MaxRequests = DefaultPolicy.MaxRequests
	}
	if policy.Message == "" {
		policy.Message = DefaultPolicy.Message
	}
	return &RateLimiterService{cache: cache, policy: policy, now: clock, logger: logger}
}

// Allow implements ports.RateLimiterService.
//
// The counter key includes the policy name: gates stacked on one request
// (the global default plus a route-specific one) each own their own window
// instead of double-counting into a shared one.
func (s *RateLimiterService) Allow(ctx context.Context, clientAddr, route string) (ports.RateLimitResult, error) {
	clientKey := s.cache.Key(s.policy.Name + ":" + clientAddr + ":" + route)
	now := s.now()

	rec := rateLimitRecord{Count: 0, FirstRequestTime: now}
	existed := false
	if raw, ok, err := s.cache.Get(ctx, clientKey); err != nil {
		return s.internalFailure(clientKey, fmt.Errorf("read counter: %w", err))
	} else if ok {
		if err := json.Unmarshal(raw, &rec); err != nil {
			return s.internalFailure(clientKey, fmt.Errorf("decode counter: %w", err))
		}
		existed = true
	}

	if now.Sub(rec.FirstRequestTime) > s.policy.Window {
		// Window elapsed: this request starts a fresh one.
		rec = rateLimitRecord{Count: 1, FirstRequestTime: now}
	} else {
		rec.Count++
	}

	result := ports.RateLimitResult{
		Limit:     s.policy.MaxRequests,
		Remaining: max(0, s.policy.MaxRequests-rec.Count),
		Message:   s.policy.Message,
	}

	if rec.Count > s.policy.MaxRequests {
		// Overrun: reject without persisting, so the rejected request does
		// not push the window further out.
		result.Allowed = false
		result.RetryAfter = ceilSeconds(s.policy.Window - now.Sub(rec.FirstRequestTime))
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{
				"policy": s.policy.Name, "client_key": clientKey, "count": rec.Count,
			}).Debug("rate limit exceeded")
		}
		return result, nil
	}

	// Persist through the insert-once cache: delete the old record, insert
	// the updated one, TTL rounded up to whole seconds of the window.
	if existed {
		if err := s.cache.Delete(ctx, clientKey); err != nil {
			return s.internalFailure(clientKey, fmt.Errorf("replace counter: %w", err))
		}
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return s.internalFailure(clientKey, fmt.Errorf("encode counter: %w", err))
	}
	if _, err := s.cache.Set(ctx, clientKey, raw, ceilSeconds(s.policy.Window)); err != nil {
		return s.internalFailure(clientKey, fmt.Errorf("store counter: %w", err))
	}

	result.Allowed = true
	return result, nil
}

// internalFailure resolves a limiter-internal error according to the policy's
// fail mode. The error is returned for logging either way; the decision in
// the result is final.
func (s *RateLimiterService) internalFailure(clientKey string, cause error) (ports.RateLimitResult, error) {
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"policy": s.policy.Name, "client_key": clientKey,
		}).WithError(cause).Error("rate limiter internal error")
	}

	result := ports.RateLimitResult{
		Limit:     s.policy.MaxRequests,
		Remaining: 0,
		Message:   s.policy.Message,
		Allowed:   s.policy.OnInternalError == FailOpen,
	}
	return result, fmt.Errorf("rate limiter: %w", cause)
}

// ceilSeconds rounds d up to a whole number of seconds, never below zero.
func ceilSeconds(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return time.Duration(math.Ceil(d.Seconds())) * time.Second
}
