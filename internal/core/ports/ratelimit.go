package ports

import (
	"context"
	"time"
)

// RateLimitResult is the outcome of one gating decision. Limit and Remaining
// are always populated so the HTTP layer can set response headers regardless
// of the outcome; RetryAfter is meaningful only when Allowed is false.
type RateLimitResult struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
	Message    string
}

// RateLimiterService gates requests with a fixed-window counter per client
// identity. Implementations MUST be safe for concurrent use and MUST NOT let
// an internal storage failure silently disable limiting: the failure policy
// (fail-closed by default) decides whether such requests pass.
type RateLimiterService interface {
	// Allow consumes one request unit for clientAddr on route and reports the
	// decision. A nil error with Allowed=false is an ordinary window overrun;
	// errors are internal failures already resolved by the failure policy.
	Allow(ctx context.Context, clientAddr, route string) (RateLimitResult, error)
}
