// Package push records device tokens for notification delivery. The layer
// is write-only; reading tokens back and sending notifications belongs to
// the delivery service consuming the same collection.
package push
