package httpserver_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiohq/portal/pkg/httpserver"
)

func TestServer_RunAndShutdown(t *testing.T) {
	srv := httpserver.New(
		httpserver.WithAddr("127.0.0.1:0"),
		httpserver.WithShutdownTimeout(time.Second),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
	}()

	// Cancelled context must stop the server cleanly
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down in time")
	}
}

func TestServer_RunTwice(t *testing.T) {
	srv := httpserver.New(httpserver.WithAddr("127.0.0.1:0"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = srv.Run(ctx, nil) }()
	time.Sleep(50 * time.Millisecond)

	err := srv.Run(ctx, nil)
	assert.ErrorIs(t, err, httpserver.ErrStart)
}

func TestHealthCheckHandler(t *testing.T) {
	t.Parallel()
	log := httptestLogger()

	t.Run("liveness", func(t *testing.T) {
		t.Parallel()

		h := httpserver.HealthCheckHandler(context.Background(), log)
		w := httptest.NewRecorder()
		h(w, httptest.NewRequest("GET", "/healthz", nil))

		res := w.Result()
		body, _ := io.ReadAll(res.Body)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "ALIVE", string(body))
	})

	t.Run("readiness ok", func(t *testing.T) {
		t.Parallel()

		probe := func(context.Context) error { return nil }
		h := httpserver.HealthCheckHandler(context.Background(), log, probe, probe)
		w := httptest.NewRecorder()
		h(w, httptest.NewRequest("GET", "/readyz", nil))

		body, _ := io.ReadAll(w.Result().Body)
		assert.Equal(t, "READY", string(body))
	})

	t.Run("readiness failure", func(t *testing.T) {
		t.Parallel()

		failing := func(context.Context) error { return errors.New("down") }
		h := httpserver.HealthCheckHandler(context.Background(), log, failing)
		w := httptest.NewRecorder()
		h(w, httptest.NewRequest("GET", "/readyz", nil))

		res := w.Result()
		body, _ := io.ReadAll(res.Body)
		require.Equal(t, http.StatusInternalServerError, res.StatusCode)
		assert.Equal(t, "NOT_READY", string(body))
	})
}

func httptestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
