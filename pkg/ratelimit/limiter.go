package ratelimit

import (
	"context"
	"errors"
	"time"
)

// Limiter enforces fixed-window budgets per (identity, class) pair.
type Limiter struct {
	store    Store
	policies map[Class]Policy
	now      func() time.Time
}

// LimiterOption configures a Limiter.
type LimiterOption func(*Limiter)

// WithPolicies overrides the default per-class budgets.
func WithPolicies(policies map[Class]Policy) LimiterOption {
	return func(l *Limiter) {
		if len(policies) > 0 {
			l.policies = policies
		}
	}
}

// WithClock injects a time source so tests control window boundaries.
func WithClock(now func() time.Time) LimiterOption {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLimiter creates a limiter over the given counter store.
func NewLimiter(store Store, opts ...LimiterOption) *Limiter {
	if store == nil {
		panic("ratelimit: store is required")
	}

	l := &Limiter{
		store:    store,
		policies: DefaultConfig().Policies(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow consumes one slot for the identity in the given class. The check and
// the consumption are a single atomic store operation, so concurrent callers
// racing on the same identity can never overshoot the budget. A store
// failure is returned as an error; the caller must fail closed.
func (l *Limiter) Allow(ctx context.Context, identity string, class Class) (*Result, error) {
	policy, ok := l.policies[class]
	if !ok {
		return nil, ErrUnknownClass
	}

	count, remaining, err := l.store.IncrementAndGet(ctx, Key(identity, class), policy.Window)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	result := &Result{
		Allowed:   count <= int64(policy.Limit),
		Limit:     policy.Limit,
		Remaining: policy.Limit - int(count),
		ResetAt:   l.now().Add(remaining),
	}
	if result.Remaining < 0 {
		result.Remaining = 0
	}

	return result, nil
}
