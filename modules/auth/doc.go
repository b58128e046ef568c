// Package auth is the HTTP surface of the security layer: login and logout
// for the cookie and bearer transports, session introspection, CSRF token
// issuance, push token registration, the role-gated admin surface, and the
// cleanup trigger.
package auth
