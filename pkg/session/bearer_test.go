package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiohq/portal/pkg/session"
)

func bearerRequest(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/mobile/session", nil)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

func TestBearerManager_CreateAndVerify(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := session.NewMemoryStore()
	mgr := session.NewBearerManager(store, session.WithClock(func() time.Time { return now }))

	userID := uuid.New()
	sess, err := mgr.Create(context.Background(), userID, session.RoleClient)
	require.NoError(t, err)
	assert.Len(t, sess.Token, 43)
	assert.Equal(t, session.TransportMobile, sess.Transport)
	assert.Equal(t, now.Add(7*24*time.Hour), sess.ExpiresAt)

	ident, err := mgr.Verify(context.Background(), bearerRequest(sess.Token))
	require.NoError(t, err)
	assert.True(t, ident.Authenticated)
	assert.Equal(t, userID, ident.UserID)
}

func TestBearerManager_VerifyMissingOrMalformedHeader(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	mgr := session.NewBearerManager(store)

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "bare token", header: "sometokenwithoutscheme"},
		{name: "lowercase scheme", header: "bearer sometoken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodGet, "/mobile/session", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			ident, err := mgr.Verify(context.Background(), r)
			require.NoError(t, err)
			assert.False(t, ident.Authenticated)
		})
	}
}

func TestBearerManager_VerifyUnknownToken(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	mgr := session.NewBearerManager(store)

	ident, err := mgr.Verify(context.Background(), bearerRequest("AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"))
	require.NoError(t, err)
	assert.False(t, ident.Authenticated)
}

func TestBearerManager_LazyExpiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := &now
	store := session.NewMemoryStore()
	mgr := session.NewBearerManager(store, session.WithClock(func() time.Time { return *clock }))

	sess, err := mgr.Create(context.Background(), uuid.New(), session.RoleClient)
	require.NoError(t, err)

	*clock = sess.ExpiresAt
	ident, err := mgr.Verify(context.Background(), bearerRequest(sess.Token))
	require.NoError(t, err)
	assert.False(t, ident.Authenticated)
	assert.Equal(t, 1, store.Len())
}

func TestBearerManager_RequireAdmin(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	mgr := session.NewBearerManager(store)

	adminSess, err := mgr.Create(context.Background(), uuid.New(), session.RoleAdmin)
	require.NoError(t, err)
	clientSess, err := mgr.Create(context.Background(), uuid.New(), session.RoleClient)
	require.NoError(t, err)

	ident, err := mgr.RequireAdmin(context.Background(), bearerRequest(adminSess.Token))
	require.NoError(t, err)
	assert.Equal(t, session.RoleAdmin, ident.Role)

	_, err = mgr.RequireAdmin(context.Background(), bearerRequest(clientSess.Token))
	require.ErrorIs(t, err, session.ErrUnauthorized)

	_, err = mgr.RequireAdmin(context.Background(), bearerRequest(""))
	require.ErrorIs(t, err, session.ErrUnauthenticated)
}

func TestBearerManager_Destroy(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	mgr := session.NewBearerManager(store)

	sess, err := mgr.Create(context.Background(), uuid.New(), session.RoleClient)
	require.NoError(t, err)

	require.NoError(t, mgr.Destroy(context.Background(), bearerRequest(sess.Token)))

	ident, err := mgr.Verify(context.Background(), bearerRequest(sess.Token))
	require.NoError(t, err)
	assert.False(t, ident.Authenticated)

	// Repeat destroy and destroy-without-token are both no-ops
	require.NoError(t, mgr.Destroy(context.Background(), bearerRequest(sess.Token)))
	require.NoError(t, mgr.Destroy(context.Background(), bearerRequest("")))
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, session.BearerToken(r))

	r.Header.Set("Authorization", "Bearer abc123")
	assert.Equal(t, "abc123", session.BearerToken(r))
}
