// Package httpserver wraps net/http with graceful shutdown, sane timeout
// defaults, and health probe handlers.
package httpserver
