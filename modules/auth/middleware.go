package auth

import (
	"net/http"
	"slices"

	"github.com/studiohq/portal/pkg/csrf"
	"github.com/studiohq/portal/pkg/logger"
	"github.com/studiohq/portal/pkg/session"
)

// corsMiddleware answers cross-origin requests for the configured origins.
// Preflights are answered with 204 before any other middleware runs.
func (s *Service) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && slices.Contains(s.cfg.CORSAllowedOrigins, origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-CSRF-Token")
			w.Header().Set("Access-Control-Max-Age", "600")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withIdentity resolves the request identity, cookie transport first, then
// bearer, and stores it in the context. Resolution failure from storage is
// a 500; an absent or invalid credential just leaves the request
// unauthenticated for downstream guards to judge.
func (s *Service) withIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, err := s.sessions.Verify(r.Context(), r)
		if err != nil {
			s.serverError(w, r, err)
			return
		}

		if !ident.Authenticated {
			ident, err = s.bearer.Verify(r.Context(), r)
			if err != nil {
				s.serverError(w, r, err)
				return
			}
		}

		next.ServeHTTP(w, r.WithContext(session.WithIdentity(r.Context(), ident)))
	})
}

// requireAuthenticated rejects anonymous requests with 401.
func (s *Service) requireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := session.IdentityFromContext(r.Context())
		if !ok || !ident.Authenticated {
			respondError(w, http.StatusUnauthorized, s.msg(r, msgUnauthenticated))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAdmin rejects everything but authenticated admins with 401.
func (s *Service) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := session.IdentityFromContext(r.Context())
		switch {
		case !ok || !ident.Authenticated:
			respondError(w, http.StatusUnauthorized, s.msg(r, msgUnauthenticated))
		case ident.Role != session.RoleAdmin:
			respondError(w, http.StatusUnauthorized, s.msg(r, msgUnauthorized))
		default:
			next.ServeHTTP(w, r)
		}
	})
}

// csrfWeb applies the CSRF guard to cookie-transport requests only. Bearer
// requests bypass it: browsers never attach the Authorization header on
// their own, so there is nothing to forge.
func (s *Service) csrfWeb(next http.Handler) http.Handler {
	guarded := csrf.Middleware(s.guard)(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if session.BearerToken(r) != "" {
			next.ServeHTTP(w, r)
			return
		}
		guarded.ServeHTTP(w, r)
	})
}

func (s *Service) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.ErrorContext(r.Context(), "request failed on storage",
		logger.Error(err),
		logger.Component("auth"),
	)
	respondError(w, http.StatusInternalServerError, s.msg(r, msgServerError))
}
