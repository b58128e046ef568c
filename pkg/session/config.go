package session

import "time"

// Config holds session configuration.
type Config struct {
	// CookieName is the name of the web session cookie
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"portal_session"`

	// TTL is the fixed session lifetime; expiry is set at issuance and
	// never slides forward on activity
	TTL time.Duration `env:"SESSION_TTL" envDefault:"168h"`

	// SecureCookies enables the Secure flag on session cookies
	// (recommended for production)
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
}

// DefaultConfig returns default session configuration.
func DefaultConfig() Config {
	return Config{
		CookieName:    "portal_session",
		TTL:           7 * 24 * time.Hour,
		SecureCookies: false,
	}
}
