// Package mongo provides configuration and connection helpers for the
// document store backing sessions, CSRF tokens, and account lookups.
package mongo
