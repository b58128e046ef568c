package csrf

import "time"

// Config holds CSRF guard configuration.
type Config struct {
	// CookieName is the JS-readable cookie carrying the token
	CookieName string `env:"CSRF_COOKIE_NAME" envDefault:"portal_csrf"`

	// HeaderName is the request header the client echoes the token in
	HeaderName string `env:"CSRF_HEADER_NAME" envDefault:"X-CSRF-Token"`

	// TTL is the token lifetime
	TTL time.Duration `env:"CSRF_TTL" envDefault:"1h"`

	// SecureCookies enables the Secure flag on the token cookie
	SecureCookies bool `env:"CSRF_SECURE_COOKIES" envDefault:"false"`
}

// DefaultConfig returns default CSRF configuration.
func DefaultConfig() Config {
	return Config{
		CookieName:    "portal_csrf",
		HeaderName:    "X-CSRF-Token",
		TTL:           time.Hour,
		SecureCookies: false,
	}
}
