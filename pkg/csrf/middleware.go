package csrf

import (
	"errors"
	"net/http"

	"github.com/studiohq/portal/pkg/logger"
)

// Middleware enforces CSRF verification on state-changing methods before
// any handler logic runs. Safe methods pass through untouched. A storage
// failure maps to 500, every other verification failure to 403.
func Middleware(guard *Guard) func(http.Handler) http.Handler {
	if guard == nil {
		panic("csrf.Middleware: guard is required")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
				if err := guard.Verify(r.Context(), r); err != nil {
					if errors.Is(err, ErrStoreUnavailable) {
						guard.log.ErrorContext(r.Context(), "csrf verification failed",
							logger.Error(err),
							logger.Component("csrf"),
						)
						http.Error(w, "Internal Server Error", http.StatusInternalServerError)
						return
					}
					http.Error(w, "Forbidden", http.StatusForbidden)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
