package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studiohq/portal/pkg/ratelimit"
)

// Handle builds the routing tree. Guard order on every path is rate limit,
// then session verification, then CSRF, then the handler; the auth class
// wraps credential endpoints while everything else meters under the api
// class.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(s.corsMiddleware)

	// Credential endpoints: anonymous by definition, keyed by client IP,
	// tight budget
	r.Group(func(r chi.Router) {
		r.Use(ratelimit.Middleware(s.limiter, ratelimit.ClassAuth, s.log))

		r.Post("/login", s.handleLogin)
		r.Post("/mobile/login", s.handleMobileLogin)
	})

	// General surface: identity resolves first so authenticated callers
	// are metered per user rather than per address
	r.Group(func(r chi.Router) {
		r.Use(s.withIdentity)
		r.Use(ratelimit.Middleware(s.limiter, ratelimit.ClassAPI, s.log))

		r.Get("/session", s.handleSession)
		r.Get("/csrf", s.handleCSRF)

		r.Group(func(r chi.Router) {
			r.Use(s.csrfWeb)

			r.Post("/logout", s.handleLogout)
			r.Post("/mobile/logout", s.handleMobileLogout)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuthenticated)
				r.Post("/push-token", s.handlePushToken)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Get("/admin/overview", s.handleAdminOverview)
		})
	})

	if s.cron != nil {
		r.Handle("/cron/cleanup", s.cron)
	}

	return r
}
