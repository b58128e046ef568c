// Package session implements the authentication layer for both client
// families: browser sessions carried in an HTTP-only cookie and mobile
// sessions carried in an Authorization bearer header. Both share one store
// and one fixed-expiry policy; verification always revalidates against
// persisted state and never extends expiry.
package session
