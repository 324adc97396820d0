package httpapi

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/aiven-clouds-proxy/internal/metrics"
)

func newOpsApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterOpsRoutes(app, "aiven-clouds-proxy")
	return app
}

func TestHealth(t *testing.T) {
	resp, err := newOpsApp().Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","service":"aiven-clouds-proxy"}`, string(body))
}

func TestMetricsExposesCacheCounters(t *testing.T) {
	metrics.CacheMetrics{}.Hit()

	resp, err := newOpsApp().Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `clouds_cache_events_total{event="hit"}`)
	assert.Contains(t, string(body), "go_goroutines")
}
