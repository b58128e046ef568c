package csrf_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiohq/portal/pkg/cookie"
	"github.com/studiohq/portal/pkg/csrf"
)

const testSecret = "test-secret-key-32-characters-ok"

func newTestGuard(t *testing.T, now func() time.Time) (*csrf.Guard, *csrf.MemoryStore) {
	t.Helper()

	cookies, err := cookie.New([]string{testSecret})
	require.NoError(t, err)

	store := csrf.NewMemoryStore()
	return csrf.NewGuard(store, cookies, csrf.WithClock(now)), store
}

func issueToken(t *testing.T, guard *csrf.Guard) (string, []*http.Cookie) {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/csrf", nil)
	tok, err := guard.Issue(context.Background(), w, r)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	return tok, w.Result().Cookies()
}

func TestGuard_Issue(t *testing.T) {
	t.Parallel()

	guard, _ := newTestGuard(t, time.Now)
	tok, cookies := issueToken(t, guard)

	require.Len(t, cookies, 1)
	assert.Equal(t, "portal_csrf", cookies[0].Name)
	assert.Equal(t, tok, cookies[0].Value)
	assert.False(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookies[0].SameSite)
	assert.Equal(t, 3600, cookies[0].MaxAge)
	assert.Len(t, tok, 43)
}

func TestGuard_IssueIdempotent(t *testing.T) {
	t.Parallel()

	guard, _ := newTestGuard(t, time.Now)
	tok, cookies := issueToken(t, guard)

	// A second issue with the live cookie returns the same token and sets
	// no new cookie
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/csrf", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	again, err := guard.Issue(context.Background(), w, r)
	require.NoError(t, err)
	assert.Equal(t, tok, again)
	assert.Empty(t, w.Result().Cookies())
}

func TestGuard_IssueRotatesExpired(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := &now
	guard, _ := newTestGuard(t, func() time.Time { return *clock })

	tok, cookies := issueToken(t, guard)

	*clock = now.Add(61 * time.Minute)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/csrf", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	fresh, err := guard.Issue(context.Background(), w, r)
	require.NoError(t, err)
	assert.NotEqual(t, tok, fresh)
	require.Len(t, w.Result().Cookies(), 1)
}

func TestGuard_IssueIgnoresForeignCookie(t *testing.T) {
	t.Parallel()

	// A cookie value never handed out by this service has no store record
	// and must be replaced, not adopted
	guard, _ := newTestGuard(t, time.Now)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/csrf", nil)
	r.AddCookie(&http.Cookie{Name: "portal_csrf", Value: "attacker-chosen-value"})

	tok, err := guard.Issue(context.Background(), w, r)
	require.NoError(t, err)
	assert.NotEqual(t, "attacker-chosen-value", tok)
}

func TestGuard_Verify(t *testing.T) {
	t.Parallel()

	guard, store := newTestGuard(t, time.Now)
	tok, cookies := issueToken(t, guard)

	makeRequest := func(header string, withCookie bool) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/push-token", nil)
		if header != "" {
			r.Header.Set("X-CSRF-Token", header)
		}
		if withCookie {
			for _, c := range cookies {
				r.AddCookie(c)
			}
		}
		return r
	}

	t.Run("matching pair passes", func(t *testing.T) {
		require.NoError(t, guard.Verify(context.Background(), makeRequest(tok, true)))
	})

	t.Run("missing header", func(t *testing.T) {
		err := guard.Verify(context.Background(), makeRequest("", true))
		require.ErrorIs(t, err, csrf.ErrTokenMissing)
	})

	t.Run("missing cookie", func(t *testing.T) {
		err := guard.Verify(context.Background(), makeRequest(tok, false))
		require.ErrorIs(t, err, csrf.ErrTokenMissing)
	})

	t.Run("mismatched header", func(t *testing.T) {
		err := guard.Verify(context.Background(), makeRequest("not-the-token", true))
		require.ErrorIs(t, err, csrf.ErrTokenMismatch)
	})

	t.Run("record deleted", func(t *testing.T) {
		require.NoError(t, store.Delete(context.Background(), tok))
		err := guard.Verify(context.Background(), makeRequest(tok, true))
		require.ErrorIs(t, err, csrf.ErrTokenMismatch)
	})
}

func TestGuard_VerifyExpiredRecord(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := &now
	guard, _ := newTestGuard(t, func() time.Time { return *clock })

	tok, cookies := issueToken(t, guard)

	*clock = now.Add(2 * time.Hour)
	r := httptest.NewRequest(http.MethodPost, "/push-token", nil)
	r.Header.Set("X-CSRF-Token", tok)
	for _, c := range cookies {
		r.AddCookie(c)
	}

	err := guard.Verify(context.Background(), r)
	require.ErrorIs(t, err, csrf.ErrTokenMismatch)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	guard, _ := newTestGuard(t, time.Now)
	tok, cookies := issueToken(t, guard)

	handler := csrf.Middleware(guard)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("safe method passes without token", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/session", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("post without token rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/logout", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("post with matching pair passes", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/logout", nil)
		r.Header.Set("X-CSRF-Token", tok)
		for _, c := range cookies {
			r.AddCookie(c)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("delete with mismatch rejected", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodDelete, "/push-token", nil)
		r.Header.Set("X-CSRF-Token", "wrong")
		for _, c := range cookies {
			r.AddCookie(c)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestMemoryStore_DeleteExpired(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := csrf.NewMemoryStore()

	require.NoError(t, store.Put(context.Background(), "live", now.Add(time.Hour)))
	require.NoError(t, store.Put(context.Background(), "dead-1", now.Add(-time.Minute)))
	require.NoError(t, store.Put(context.Background(), "dead-2", now))

	removed, err := store.DeleteExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	ok, err := store.Exists(context.Background(), "live", now)
	require.NoError(t, err)
	assert.True(t, ok)
}
