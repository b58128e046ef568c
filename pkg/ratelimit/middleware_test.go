package ratelimit_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiohq/portal/pkg/ratelimit"
	"github.com/studiohq/portal/pkg/session"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware_AllowsAndSetsHeaders(t *testing.T) {
	t.Parallel()

	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(),
		ratelimit.WithPolicies(map[ratelimit.Class]ratelimit.Policy{
			ratelimit.ClassAPI: {Limit: 3, Window: time.Minute},
		}),
	)

	handler := ratelimit.Middleware(limiter, ratelimit.ClassAPI, discardLogger())(okHandler())

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/session", nil)
	r.RemoteAddr = "203.0.113.9:4711"
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
}

func TestMiddleware_BlocksOverBudget(t *testing.T) {
	t.Parallel()

	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(),
		ratelimit.WithPolicies(map[ratelimit.Class]ratelimit.Policy{
			ratelimit.ClassAuth: {Limit: 2, Window: time.Minute},
		}),
	)

	handler := ratelimit.Middleware(limiter, ratelimit.ClassAuth, discardLogger())(okHandler())

	var last *httptest.ResponseRecorder
	for range 3 {
		last = httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/login", nil)
		r.RemoteAddr = "203.0.113.9:4711"
		handler.ServeHTTP(last, r)
	}

	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.NotEmpty(t, last.Header().Get("Retry-After"))
	assert.Equal(t, "0", last.Header().Get("X-RateLimit-Remaining"))
}

func TestMiddleware_IdentitySeparation(t *testing.T) {
	t.Parallel()

	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(),
		ratelimit.WithPolicies(map[ratelimit.Class]ratelimit.Policy{
			ratelimit.ClassAPI: {Limit: 1, Window: time.Minute},
		}),
	)

	handler := ratelimit.Middleware(limiter, ratelimit.ClassAPI, discardLogger())(okHandler())

	// An authenticated user exhausts their own budget
	ident := session.Identity{Authenticated: true, UserID: uuid.New(), Role: session.RoleClient}
	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/session", nil)
		r.RemoteAddr = "203.0.113.9:4711"
		r = r.WithContext(session.WithIdentity(r.Context(), ident))
		handler.ServeHTTP(w, r)
		require.Equal(t, want, w.Code, "request %d", i)
	}

	// An anonymous caller from the same address is keyed by IP and passes
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/session", nil)
	r.RemoteAddr = "203.0.113.9:4711"
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMiddleware_StoreFailureFailsClosed(t *testing.T) {
	t.Parallel()

	limiter := ratelimit.NewLimiter(failingCounterStore{err: assert.AnError})
	handler := ratelimit.Middleware(limiter, ratelimit.ClassAPI, discardLogger())(okHandler())

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/session", nil)
	r.RemoteAddr = "203.0.113.9:4711"
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
