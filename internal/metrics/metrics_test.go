package metrics_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ErlanBelekov/events-client/internal/health"
	"github.com/ErlanBelekov/events-client/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, apiErr error) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	checker := health.NewChecker(map[string]health.Pinger{
		"api": health.PingerFunc(func(context.Context) error { return apiErr }),
	}, logger, prometheus.NewRegistry())
	return metrics.NewServer(":0", checker).Handler
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestServer_Healthz(t *testing.T) {
	w := get(t, newServer(t, errors.New("down")), "/healthz")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestServer_ReadyzUp(t *testing.T) {
	w := get(t, newServer(t, nil), "/readyz")

	require.Equal(t, http.StatusOK, w.Code)
	var res health.HealthResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "up", res.Checks["api"].Status)
}

func TestServer_ReadyzDown(t *testing.T) {
	w := get(t, newServer(t, errors.New("connection refused")), "/readyz")

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var res health.HealthResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "down", res.Status)
	assert.Equal(t, "connection refused", res.Checks["api"].Error)
}

func TestServer_ExposesMetrics(t *testing.T) {
	w := get(t, newServer(t, nil), "/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
