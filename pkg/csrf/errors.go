package csrf

import "errors"

var (
	// ErrTokenMissing indicates the header or cookie half of the pair is absent
	ErrTokenMissing = errors.New("csrf.token_missing")

	// ErrTokenMismatch indicates the halves differ or the persisted record
	// is gone or expired
	ErrTokenMismatch = errors.New("csrf.token_mismatch")

	// ErrStoreUnavailable indicates a persistence failure; the middleware
	// fails closed with a server error
	ErrStoreUnavailable = errors.New("csrf.store_unavailable")
)
