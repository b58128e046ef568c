package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/studiohq/portal/pkg/cookie"
	"github.com/studiohq/portal/pkg/logger"
	"github.com/studiohq/portal/pkg/token"
)

// Option configures a Manager or BearerManager.
type Option func(*options)

type options struct {
	config Config
	now    func() time.Time
	log    *slog.Logger
}

// WithConfig overrides the default session configuration.
func WithConfig(cfg Config) Option {
	return func(o *options) { o.config = cfg }
}

// WithClock injects a time source so tests control expiry deterministically.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger supplies a logger for store failures on verification paths.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		config: DefaultConfig(),
		now:    time.Now,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Manager handles the cookie-based web session lifecycle.
type Manager struct {
	store   Store
	cookies *cookie.Manager
	cfg     Config
	now     func() time.Time
	log     *slog.Logger
}

// NewManager creates a web session manager. The cookie manager is required
// because the web transport is cookies; misconfiguration aborts startup.
func NewManager(store Store, cookies *cookie.Manager, opts ...Option) *Manager {
	if store == nil {
		panic("session: store is required")
	}
	if cookies == nil {
		panic("session: cookie manager is required for web transport")
	}

	o := buildOptions(opts)
	return &Manager{
		store:   store,
		cookies: cookies,
		cfg:     o.config,
		now:     o.now,
		log:     o.log,
	}
}

// Create issues a new web session for the user and sets the session cookie.
// The cookie is HTTP-only, SameSite=Strict, path=/ with max-age matching the
// remaining session lifetime.
func (m *Manager) Create(ctx context.Context, w http.ResponseWriter, userID uuid.UUID, role Role) (*Session, error) {
	sess, err := issue(ctx, m.store, userID, role, TransportWeb, m.cfg.TTL, m.now)
	if err != nil {
		return nil, err
	}

	maxAge := int(sess.ExpiresAt.Sub(m.now()).Seconds())
	cookieOpts := []cookie.Option{
		cookie.WithPath("/"),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteStrictMode),
		cookie.WithMaxAge(maxAge),
	}
	if m.cfg.SecureCookies {
		cookieOpts = append(cookieOpts, cookie.WithSecure(true))
	}

	if err := m.cookies.SetSigned(w, m.cfg.CookieName, sess.Token, cookieOpts...); err != nil {
		_ = m.store.Delete(ctx, sess.Token)
		return nil, err
	}

	return sess, nil
}

// Verify authenticates the request against persisted state. Cookie presence
// alone never authenticates: a forged or stale cookie without a matching,
// non-expired store record fails. Expired records are treated as
// unauthenticated regardless of whether the cleanup sweep has run (lazy
// expiry). A storage failure returns a non-nil error so callers fail closed
// with a server error instead of silently denying or granting.
func (m *Manager) Verify(ctx context.Context, r *http.Request) (Identity, error) {
	tok, err := m.cookies.GetSigned(r, m.cfg.CookieName)
	if err != nil || tok == "" {
		return Identity{}, nil
	}

	return verifyToken(ctx, m.store, tok, TransportWeb, m.now(), m.log)
}

// RequireAdmin verifies the session and authorizes only the admin role.
// It never panics: the result is ErrUnauthenticated or ErrUnauthorized for
// the caller to map to a response.
func (m *Manager) RequireAdmin(ctx context.Context, r *http.Request) (Identity, error) {
	ident, err := m.Verify(ctx, r)
	if err != nil {
		return Identity{}, err
	}
	return requireAdmin(ident)
}

// Destroy deletes the session record for the request's cookie (if any) and
// clears the cookie. Calling it with no active session is not an error.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	tok, err := m.cookies.GetSigned(r, m.cfg.CookieName)
	if err == nil && tok != "" {
		if err := m.store.Delete(ctx, tok); err != nil {
			return err
		}
	}

	m.cookies.Delete(w, m.cfg.CookieName)
	return nil
}

// DestroyAllForUser removes every session of the user across transports,
// e.g. after a password change.
func (m *Manager) DestroyAllForUser(ctx context.Context, userID uuid.UUID) error {
	return m.store.DeleteByUserID(ctx, userID)
}

// issue creates and persists a session, retrying once with a fresh token on
// the vanishingly unlikely generator collision before surfacing the error.
func issue(ctx context.Context, store Store, userID uuid.UUID, role Role, transport Transport, ttl time.Duration, now func() time.Time) (*Session, error) {
	if !role.Valid() {
		return nil, ErrIntegrity
	}

	var lastErr error
	for range 2 {
		tok, err := token.New()
		if err != nil {
			return nil, err
		}

		created := now()
		sess := &Session{
			Token:     tok,
			UserID:    userID,
			Role:      role,
			Transport: transport,
			CreatedAt: created,
			ExpiresAt: created.Add(ttl),
		}

		if err := store.Create(ctx, sess); err != nil {
			if errors.Is(err, ErrDuplicateToken) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return sess, nil
	}

	return nil, lastErr
}

// verifyToken is the shared revalidation path for both transports.
func verifyToken(ctx context.Context, store Store, tok string, transport Transport, now time.Time, log *slog.Logger) (Identity, error) {
	sess, err := store.FindByToken(ctx, tok)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Identity{}, nil
		}
		log.ErrorContext(ctx, "session lookup failed",
			logger.Error(err),
			logger.Component("session"),
		)
		return Identity{}, errors.Join(ErrStoreUnavailable, err)
	}

	// A token issued for one transport is not valid on the other
	if sess.Transport != transport {
		return Identity{}, nil
	}

	if sess.IsExpiredAt(now) {
		return Identity{}, nil
	}

	return Identity{
		Authenticated: true,
		UserID:        sess.UserID,
		Role:          sess.Role,
	}, nil
}

func requireAdmin(ident Identity) (Identity, error) {
	if !ident.Authenticated {
		return Identity{}, ErrUnauthenticated
	}
	if ident.Role != RoleAdmin {
		return Identity{}, ErrUnauthorized
	}
	return ident, nil
}
