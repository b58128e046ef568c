package ratelimit

import (
	"context"
	"time"
)

// Store is the counter backend. Implementations must make IncrementAndGet
// atomic under concurrency: two racing callers must observe distinct counts,
// never the same one.
type Store interface {
	// IncrementAndGet increments the counter for key and returns the
	// post-increment count plus time remaining in the window. A count of 1
	// starts a fresh window of the given length.
	IncrementAndGet(ctx context.Context, key string, window time.Duration) (count int64, remaining time.Duration, err error)

	// DeleteExpired removes counters whose window has elapsed and returns
	// how many were removed.
	DeleteExpired(ctx context.Context) (int64, error)
}
