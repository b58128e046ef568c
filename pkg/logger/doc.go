// Package logger provides a slog.Logger factory with environment presets
// and helper attribute constructors shared across the application.
package logger
