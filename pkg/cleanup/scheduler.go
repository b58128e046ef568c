package cleanup

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/studiohq/portal/pkg/csrf"
	"github.com/studiohq/portal/pkg/logger"
	"github.com/studiohq/portal/pkg/ratelimit"
	"github.com/studiohq/portal/pkg/session"
)

// Report counts the records each sweep removed. A run over an already
// clean data set reports zeros.
type Report struct {
	Sessions   int64 `json:"sessions"`
	CSRFTokens int64 `json:"csrfTokens"`
	RateLimits int64 `json:"rateLimits"`
}

// Scheduler sweeps expired records out of every store. Correctness never
// depends on it running: expiry is enforced lazily at verification time,
// so the sweep is purely a storage reclamation concern.
type Scheduler struct {
	sessions session.Store
	tokens   csrf.Store
	limits   ratelimit.Store
	now      func() time.Time
	log      *slog.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock injects a time source so tests control the expiry cutoff.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger supplies a logger for sweep results.
func WithLogger(log *slog.Logger) Option {
	return func(s *Scheduler) {
		if log != nil {
			s.log = log
		}
	}
}

// NewScheduler creates a cleanup scheduler over the three stores.
func NewScheduler(sessions session.Store, tokens csrf.Store, limits ratelimit.Store, opts ...Option) *Scheduler {
	if sessions == nil || tokens == nil || limits == nil {
		panic("cleanup: all stores are required")
	}

	s := &Scheduler{
		sessions: sessions,
		tokens:   tokens,
		limits:   limits,
		now:      time.Now,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run sweeps all stores once. Each sweep runs regardless of the others
// failing; the report carries whatever was removed and the error joins
// every failure encountered.
func (s *Scheduler) Run(ctx context.Context) (Report, error) {
	now := s.now()
	var report Report
	var errs []error

	n, err := s.sessions.DeleteExpired(ctx, now)
	report.Sessions = n
	if err != nil {
		errs = append(errs, err)
	}

	n, err = s.tokens.DeleteExpired(ctx, now)
	report.CSRFTokens = n
	if err != nil {
		errs = append(errs, err)
	}

	n, err = s.limits.DeleteExpired(ctx)
	report.RateLimits = n
	if err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return report, errors.Join(errs...)
	}

	s.log.InfoContext(ctx, "cleanup sweep finished",
		logger.Component("cleanup"),
		slog.Int64("sessions", report.Sessions),
		slog.Int64("csrf_tokens", report.CSRFTokens),
		slog.Int64("rate_limits", report.RateLimits),
	)

	return report, nil
}
