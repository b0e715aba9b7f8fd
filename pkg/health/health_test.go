package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(h http.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestLivez(t *testing.T) {
	h := New()
	w := serve(h.Livez)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestReadyz_NotReadyUntilMarked(t *testing.T) {
	h := New()
	h.AddCheck("store", time.Second, func(context.Context) error { return nil })

	w := serve(h.Readyz)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unhealthy","checks":{"_readiness":"service is not ready"}}`, w.Body.String())

	h.SetReady(true)
	assert.True(t, h.IsReady())
	assert.Equal(t, http.StatusOK, serve(h.Readyz).Code)
}

func TestReadyz_FailureThreshold(t *testing.T) {
	h := New()
	fail := true
	h.AddCheck("store", time.Second, func(context.Context) error {
		if fail {
			return errors.New("database is closed")
		}
		return nil
	})
	h.SetReady(true)

	ctx := context.Background()
	c := h.checks[0]
	for range failureThreshold - 1 {
		c.run(ctx)
	}
	assert.True(t, h.IsReady(), "below threshold")

	c.run(ctx)
	require.False(t, h.IsReady())
	w := serve(h.Readyz)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unhealthy","checks":{"store":"database is closed"}}`, w.Body.String())

	fail = false
	c.run(ctx)
	assert.True(t, h.IsReady())
}

func TestRun_StopsOnCancel(t *testing.T) {
	h := New()
	calls := make(chan struct{}, 16)
	h.AddCheck("store", time.Second, func(context.Context) error {
		select {
		case calls <- struct{}{}:
		default:
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Run(ctx, time.Millisecond) }()

	<-calls
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}
