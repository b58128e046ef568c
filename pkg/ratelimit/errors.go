package ratelimit

import "errors"

var (
	// ErrUnknownClass indicates a check against a class with no configured policy
	ErrUnknownClass = errors.New("ratelimit.unknown_class")

	// ErrStoreUnavailable indicates a counter storage failure; the
	// middleware fails closed with a server error rather than waving
	// traffic through unmetered
	ErrStoreUnavailable = errors.New("ratelimit.store_unavailable")
)
