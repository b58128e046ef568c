package ratelimit

import "time"

// Config holds the per-class budgets.
type Config struct {
	// APILimit is the request budget for general traffic per window
	APILimit int `env:"RATE_LIMIT_API_LIMIT" envDefault:"100"`

	// APIWindow is the fixed window length for the api class
	APIWindow time.Duration `env:"RATE_LIMIT_API_WINDOW" envDefault:"60s"`

	// AuthLimit is the request budget for credential endpoints per window
	AuthLimit int `env:"RATE_LIMIT_AUTH_LIMIT" envDefault:"10"`

	// AuthWindow is the fixed window length for the auth class
	AuthWindow time.Duration `env:"RATE_LIMIT_AUTH_WINDOW" envDefault:"60s"`
}

// Policies expands the flat env config into the per-class table the
// limiter consults.
func (c Config) Policies() map[Class]Policy {
	return map[Class]Policy{
		ClassAPI:  {Limit: c.APILimit, Window: c.APIWindow},
		ClassAuth: {Limit: c.AuthLimit, Window: c.AuthWindow},
	}
}

// DefaultConfig returns the default per-class budgets.
func DefaultConfig() Config {
	return Config{
		APILimit:   100,
		APIWindow:  time.Minute,
		AuthLimit:  10,
		AuthWindow: time.Minute,
	}
}
