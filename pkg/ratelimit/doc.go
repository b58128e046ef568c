// Package ratelimit implements fixed-window request budgets keyed by
// (identity, route class). The window starts on the first request and runs
// its full length; the check-and-consume step is a single atomic store
// operation so concurrent bursts cannot overshoot the budget.
package ratelimit
