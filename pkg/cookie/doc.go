// Package cookie manages HTTP cookies with secure defaults (path=/,
// HttpOnly, SameSite=Strict) and optional HMAC signing with key rotation.
package cookie
