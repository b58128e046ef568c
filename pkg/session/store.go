package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store defines the persistence abstraction for sessions.
type Store interface {
	// Create inserts a new session record. Returns ErrDuplicateToken if a
	// record with the same token already exists.
	Create(ctx context.Context, session *Session) error

	// FindByToken retrieves a session by token without filtering by
	// expiry; callers decide expiry semantics. Returns ErrNotFound for an
	// unknown token.
	FindByToken(ctx context.Context, token string) (*Session, error)

	// Delete removes a session by token. Idempotent; absent tokens are
	// not an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes all sessions expired before now and returns
	// the number removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)

	// DeleteByUserID removes all sessions for a specific user, across
	// both transports.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
