package csrf

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/studiohq/portal/pkg/cookie"
	"github.com/studiohq/portal/pkg/token"
)

// Guard implements the double-submit-cookie pattern with server-side state:
// the token travels in a JS-readable cookie, the client echoes it in a
// request header, and verification additionally requires the persisted
// record to exist and be unexpired. The cookie is deliberately unsigned;
// its value is worthless without the matching record.
type Guard struct {
	store   Store
	cookies *cookie.Manager
	cfg     Config
	now     func() time.Time
	log     *slog.Logger
}

// Option configures a Guard.
type Option func(*Guard)

// WithConfig overrides the default CSRF configuration.
func WithConfig(cfg Config) Option {
	return func(g *Guard) { g.cfg = cfg }
}

// WithClock injects a time source so tests control expiry deterministically.
func WithClock(now func() time.Time) Option {
	return func(g *Guard) {
		if now != nil {
			g.now = now
		}
	}
}

// WithLogger supplies a logger for store failures on the verify path.
func WithLogger(log *slog.Logger) Option {
	return func(g *Guard) {
		if log != nil {
			g.log = log
		}
	}
}

// NewGuard creates a CSRF guard over the given token store.
func NewGuard(store Store, cookies *cookie.Manager, opts ...Option) *Guard {
	if store == nil {
		panic("csrf: store is required")
	}
	if cookies == nil {
		panic("csrf: cookie manager is required")
	}

	g := &Guard{
		store:   store,
		cookies: cookies,
		cfg:     DefaultConfig(),
		now:     time.Now,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Issue returns the caller's CSRF token, minting one only when needed.
// Repeated calls within a token's lifetime return the same value, so pages
// issuing concurrent requests do not race each other's cookies. The cookie
// is readable by page scripts on purpose: the client must copy it into the
// request header, which a cross-site attacker cannot do.
func (g *Guard) Issue(ctx context.Context, w http.ResponseWriter, r *http.Request) (string, error) {
	now := g.now()

	if current, err := g.cookies.Get(r, g.cfg.CookieName); err == nil && current != "" {
		exists, err := g.store.Exists(ctx, current, now)
		if err != nil {
			return "", errors.Join(ErrStoreUnavailable, err)
		}
		if exists {
			return current, nil
		}
	}

	fresh, err := token.New()
	if err != nil {
		return "", err
	}

	if err := g.store.Put(ctx, fresh, now.Add(g.cfg.TTL)); err != nil {
		return "", errors.Join(ErrStoreUnavailable, err)
	}

	cookieOpts := []cookie.Option{
		cookie.WithPath("/"),
		cookie.WithHTTPOnly(false),
		cookie.WithSameSite(http.SameSiteStrictMode),
		cookie.WithMaxAge(int(g.cfg.TTL.Seconds())),
	}
	if g.cfg.SecureCookies {
		cookieOpts = append(cookieOpts, cookie.WithSecure(true))
	}

	if err := g.cookies.Set(w, g.cfg.CookieName, fresh, cookieOpts...); err != nil {
		return "", err
	}

	return fresh, nil
}

// Verify checks the header token against the cookie token in constant time
// and confirms the persisted record is still live. Both halves must be
// present; comparison runs even though one half may be empty so the error
// path has uniform timing.
func (g *Guard) Verify(ctx context.Context, r *http.Request) error {
	header := r.Header.Get(g.cfg.HeaderName)
	cookieTok, err := g.cookies.Get(r, g.cfg.CookieName)
	if err != nil {
		cookieTok = ""
	}

	if header == "" || cookieTok == "" {
		return ErrTokenMissing
	}

	if subtle.ConstantTimeCompare([]byte(header), []byte(cookieTok)) != 1 {
		return ErrTokenMismatch
	}

	exists, err := g.store.Exists(ctx, cookieTok, g.now())
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	if !exists {
		return ErrTokenMismatch
	}

	return nil
}
