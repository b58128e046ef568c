package session

import "context"

type identityContextKey struct{}

// WithIdentity adds a verified identity to the context.
func WithIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, ident)
}

// IdentityFromContext retrieves the verified identity from the context.
// The zero Identity is returned when verification has not run.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(identityContextKey{}).(Identity)
	return ident, ok
}
