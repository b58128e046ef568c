package ratelimit

import (
	"fmt"
	"time"
)

// Class is a route class with its own request budget. Limits apply per
// (identity, class) pair, so exhausting the auth budget never blocks api
// traffic for the same caller.
type Class string

const (
	// ClassAPI covers general authenticated traffic.
	ClassAPI Class = "api"

	// ClassAuth covers credential-bearing endpoints, which get a much
	// tighter budget to slow down guessing.
	ClassAuth Class = "auth"
)

// Policy is the budget for one class: at most Limit requests per Window.
type Policy struct {
	Limit  int
	Window time.Duration
}

// Result is the outcome of one rate limit check.
type Result struct {
	// Allowed indicates whether the request is within budget.
	Allowed bool

	// Limit is the maximum number of requests allowed in the window.
	Limit int

	// Remaining is the number of requests left in the current window.
	Remaining int

	// ResetAt is when the current window expires.
	ResetAt time.Time
}

// RetryAfter returns how long to wait before the next request could be
// allowed. Returns 0 if the current request was allowed.
func (r *Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed {
		return 0
	}
	return r.ResetAt.Sub(now)
}

// Key builds the storage key for an (identity, class) pair. All stores use
// this format, so the cleanup sweep can find counters by the shared prefix.
func Key(identity string, class Class) string {
	return fmt.Sprintf("%s%s:%s", KeyPrefix, class, identity)
}

// KeyPrefix namespaces rate limit counters in shared storage.
const KeyPrefix = "ratelimit:"
