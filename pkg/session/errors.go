package session

import "errors"

var (
	// ErrNotFound indicates no session record exists for the token
	ErrNotFound = errors.New("session.not_found")

	// ErrExpired indicates the session record exists but has expired
	ErrExpired = errors.New("session.expired")

	// ErrDuplicateToken indicates a token collision on insert
	ErrDuplicateToken = errors.New("session.duplicate_token")

	// ErrIntegrity indicates a stored record failed enum validation
	ErrIntegrity = errors.New("session.integrity")

	// ErrUnauthenticated indicates no valid session accompanies the request
	ErrUnauthenticated = errors.New("session.unauthenticated")

	// ErrUnauthorized indicates a valid session with an insufficient role
	ErrUnauthorized = errors.New("session.unauthorized")

	// ErrStoreUnavailable indicates a persistence failure; callers must
	// fail closed and surface a generic server error
	ErrStoreUnavailable = errors.New("session.store_unavailable")
)
