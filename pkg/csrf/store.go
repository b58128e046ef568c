package csrf

import (
	"context"
	"time"
)

// Store persists issued tokens so verification can confirm a token was
// actually handed out by this service, not merely mirrored by the client.
type Store interface {
	// Put records a token with its expiry.
	Put(ctx context.Context, token string, expiresAt time.Time) error

	// Exists reports whether the token is present and unexpired at now.
	Exists(ctx context.Context, token string, now time.Time) (bool, error)

	// Delete removes a token. Absent tokens are not an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes all tokens expired before now and returns how
	// many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
