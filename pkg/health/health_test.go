package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeStatus(t *testing.T, w *httptest.ResponseRecorder) statusResponse {
	t.Helper()
	var resp statusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestLiveEndpoint_AllHealthy(t *testing.T) {
	h := New()
	h.AddLivenessCheck("always-ok", time.Second, func(_ context.Context) error {
		return nil
	})

	w := httptest.NewRecorder()
	h.LiveEndpoint(w, httptest.NewRequest(http.MethodGet, "/livez", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeStatus(t, w).Status)
}

func TestLiveEndpoint_FailureThreshold(t *testing.T) {
	h := New()
	h.AddLivenessCheck("flaky", time.Second, func(_ context.Context) error {
		return errors.New("down")
	})

	c := h.livenessChecks[0]

	// Below the threshold the check stays healthy.
	c.run(context.Background())
	c.run(context.Background())
	w := httptest.NewRecorder()
	h.LiveEndpoint(w, httptest.NewRequest(http.MethodGet, "/livez", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// Third consecutive failure trips it.
	c.run(context.Background())
	w = httptest.NewRecorder()
	h.LiveEndpoint(w, httptest.NewRequest(http.MethodGet, "/livez", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decodeStatus(t, w)
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "down", resp.Checks["flaky"])
}

func TestCheck_RecoversAfterSuccess(t *testing.T) {
	failing := true
	h := New()
	h.AddLivenessCheck("recovering", time.Second, func(_ context.Context) error {
		if failing {
			return errors.New("down")
		}
		return nil
	})

	c := h.livenessChecks[0]
	for range 3 {
		c.run(context.Background())
	}
	require.False(t, c.isHealthy())

	failing = false
	c.run(context.Background())
	assert.True(t, c.isHealthy(), "one success should recover (successThreshold=1)")
}

func TestReadyEndpoint_NotReadyUntilSet(t *testing.T) {
	h := New()

	w := httptest.NewRecorder()
	h.ReadyEndpoint(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	h.SetReady(true)
	w = httptest.NewRecorder()
	h.ReadyEndpoint(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// Draining flips it back.
	h.SetReady(false)
	w = httptest.NewRecorder()
	h.ReadyEndpoint(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestIsReady_ChecksGateReadiness(t *testing.T) {
	h := New()
	h.SetReady(true)
	h.AddReadinessCheck("dep", time.Second, func(_ context.Context) error {
		return errors.New("unreachable")
	})

	require.True(t, h.IsReady(), "checks assume healthy until thresholds trip")

	c := h.readinessChecks[0]
	for range 3 {
		c.run(context.Background())
	}
	assert.False(t, h.IsReady())
}

func TestStartStop(t *testing.T) {
	h := New()
	ran := make(chan struct{}, 1)
	h.AddLivenessCheck("probe", time.Second, func(_ context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	h.Start(context.Background(), time.Hour)
	defer h.Stop()

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("check did not run on start")
	}
}

func TestGoroutineCountCheck(t *testing.T) {
	assert.NoError(t, GoroutineCountCheck(1_000_000)(context.Background()))
	assert.Error(t, GoroutineCountCheck(0)(context.Background()))
}
