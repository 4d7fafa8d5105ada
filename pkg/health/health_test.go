package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passing(_ context.Context) error { return nil }

func failing(msg string) CheckFunc {
	return func(_ context.Context) error { return errors.New(msg) }
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func serve(t *testing.T, handler http.HandlerFunc) (int, statusResponse) {
	t.Helper()

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body statusResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return w.Code, body
}

func TestLiveEndpoint_NoChecks(t *testing.T) {
	code, body := serve(t, New().LiveEndpoint)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body.Status)
}

func TestLiveEndpoint_FailureThreshold(t *testing.T) {
	h := New()
	h.AddLivenessCheck("db", time.Second, failing("connection refused"))
	p := h.liveness[0]
	ctx := context.Background()

	p.run(ctx)
	p.run(ctx)
	code, _ := serve(t, h.LiveEndpoint)
	assert.Equal(t, http.StatusOK, code, "two failures stay below the threshold")

	p.run(ctx)
	code, body := serve(t, h.LiveEndpoint)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unhealthy", body.Status)
	assert.Equal(t, "connection refused", body.Checks["db"])
}

func TestProbe_Recovers(t *testing.T) {
	down := true
	h := New()
	h.AddLivenessCheck("flaky", time.Second, func(_ context.Context) error {
		if down {
			return errors.New("down")
		}
		return nil
	})
	p := h.liveness[0]
	ctx := context.Background()

	for range failureThreshold {
		p.run(ctx)
	}
	_, failed := p.failure()
	assert.True(t, failed)

	down = false
	p.run(ctx)
	_, failed = p.failure()
	assert.False(t, failed)
}

func TestReadyEndpoint(t *testing.T) {
	h := New()
	h.AddReadinessCheck("store", time.Second, passing)

	code, body := serve(t, h.ReadyEndpoint)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Contains(t, body.Checks, "_readiness")
	assert.False(t, h.IsReady())

	h.SetReady(true)
	code, _ = serve(t, h.ReadyEndpoint)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, h.IsReady())

	h.SetReady(false)
	code, _ = serve(t, h.ReadyEndpoint)
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestReadyEndpoint_OneFailing(t *testing.T) {
	h := New()
	h.AddReadinessCheck("store", time.Second, passing)
	h.AddReadinessCheck("sessions", time.Second, failing("redis down"))
	h.SetReady(true)

	for range failureThreshold {
		h.readiness[1].run(context.Background())
	}

	code, body := serve(t, h.ReadyEndpoint)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Contains(t, body.Checks, "sessions")
	assert.NotContains(t, body.Checks, "store")
	assert.False(t, h.IsReady())
}

func TestStartStop(t *testing.T) {
	h := New()
	h.AddReadinessCheck("store", time.Second, failing("nope"))
	h.SetReady(true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h.Start(ctx, 5*time.Millisecond)

	require.Eventually(t, func() bool { return !h.IsReady() }, time.Second, 5*time.Millisecond)

	h.Stop()
	h.Stop()
}

func TestConcurrentAccess(t *testing.T) {
	h := New()
	h.AddLivenessCheck("live", time.Second, failing("err"))
	h.AddReadinessCheck("ready", time.Second, passing)
	h.SetReady(true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h.Start(ctx, time.Millisecond)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				h.IsReady()
				h.LiveEndpoint(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/livez", nil))
				h.ReadyEndpoint(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/readyz", nil))
			}
		}()
	}
	wg.Wait()
	h.Stop()
}

func TestGoroutineCountCheck(t *testing.T) {
	assert.NoError(t, GoroutineCountCheck(100000)(context.Background()))

	err := GoroutineCountCheck(0)(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds threshold")
}

func TestPingCheck(t *testing.T) {
	ok := PingCheck("store", pingerFunc(func(context.Context) error { return nil }))
	assert.NoError(t, ok(context.Background()))

	bad := PingCheck("store", pingerFunc(func(context.Context) error { return errors.New("refused") }))
	err := bad(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping store")
	assert.Contains(t, err.Error(), "refused")
}
