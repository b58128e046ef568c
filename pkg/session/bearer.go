package session

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const bearerPrefix = "Bearer "

// BearerManager handles the mobile session lifecycle. Tokens travel in the
// Authorization header instead of a cookie; no CSRF guard applies to this
// transport because bearer tokens are not automatically replayed by
// browsers. This asymmetry with the web manager is deliberate.
type BearerManager struct {
	store Store
	cfg   Config
	now   func() time.Time
	log   *slog.Logger
}

// NewBearerManager creates a mobile session manager sharing the web
// manager's store and expiry policy.
func NewBearerManager(store Store, opts ...Option) *BearerManager {
	if store == nil {
		panic("session: store is required")
	}

	o := buildOptions(opts)
	return &BearerManager{
		store: store,
		cfg:   o.config,
		now:   o.now,
		log:   o.log,
	}
}

// Create issues a new mobile session. The caller returns the token to the
// client in the response body; there is no cookie on this transport.
func (m *BearerManager) Create(ctx context.Context, userID uuid.UUID, role Role) (*Session, error) {
	return issue(ctx, m.store, userID, role, TransportMobile, m.cfg.TTL, m.now)
}

// Verify authenticates the bearer token against persisted state with the
// same revalidation and lazy-expiry semantics as the web manager.
func (m *BearerManager) Verify(ctx context.Context, r *http.Request) (Identity, error) {
	tok := BearerToken(r)
	if tok == "" {
		return Identity{}, nil
	}

	return verifyToken(ctx, m.store, tok, TransportMobile, m.now(), m.log)
}

// RequireAdmin verifies the bearer session and authorizes only admins.
func (m *BearerManager) RequireAdmin(ctx context.Context, r *http.Request) (Identity, error) {
	ident, err := m.Verify(ctx, r)
	if err != nil {
		return Identity{}, err
	}
	return requireAdmin(ident)
}

// Destroy deletes the session record for the request's bearer token.
// Idempotent; a missing or unknown token is not an error.
func (m *BearerManager) Destroy(ctx context.Context, r *http.Request) error {
	tok := BearerToken(r)
	if tok == "" {
		return nil
	}
	return m.store.Delete(ctx, tok)
}

// BearerToken extracts the token from an Authorization: Bearer header.
// Returns empty string when the header is absent or malformed.
func BearerToken(r *http.Request) string {
	value := r.Header.Get("Authorization")
	if value == "" || !strings.HasPrefix(value, bearerPrefix) {
		return ""
	}
	return strings.TrimPrefix(value, bearerPrefix)
}
