// Package redis provides configuration and connection helpers for the
// Redis instance backing rate-limit counters.
package redis
