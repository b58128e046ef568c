package auth

// Config holds the HTTP surface configuration.
type Config struct {
	// CORSAllowedOrigins lists origins allowed to call the API from a
	// browser; empty disables cross-origin access entirely
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// DefaultLanguage is the fallback for guard messages when the
	// Accept-Language header matches nothing in the catalog
	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"en"`
}
