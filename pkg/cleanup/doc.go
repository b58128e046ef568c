// Package cleanup sweeps expired sessions, CSRF tokens, and rate limit
// counters out of storage. Expiry is enforced lazily on every verification,
// so the sweep reclaims space without being load-bearing for correctness.
package cleanup
