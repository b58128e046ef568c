package ratelimit

import (
	"net/http"

	"github.com/studiohq/portal/pkg/clientip"
	"github.com/studiohq/portal/pkg/session"
)

// KeyFunc extracts the rate limit identity from an HTTP request.
type KeyFunc func(*http.Request) string

// Identity resolves the limit identity for a request: the authenticated
// user id when session verification has already run, otherwise the
// normalized client IP. Unauthenticated callers behind the same proxy chain
// therefore share an IP budget, while signed-in users are metered
// individually.
func Identity(r *http.Request) string {
	if ident, ok := session.IdentityFromContext(r.Context()); ok && ident.Authenticated {
		return "user:" + ident.UserID.String()
	}
	return "ip:" + clientip.GetIP(r)
}
