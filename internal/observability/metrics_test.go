package observability

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/", "GET", 200, time.Millisecond)
		m.RecordError("/", "GET", "X")
		m.RecordProbe("ok", "")
		m.RecordAuthEvent("user_logged_in")
	})
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()
	m.RecordProbe("degraded", "ECONNREFUSED")
	m.RecordProbe("degraded", "ECONNREFUSED")
	m.RecordAuthEvent("login_failed")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.probes.WithLabelValues("degraded", "ECONNREFUSED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.authEvents.WithLabelValues("login_failed")))
}

func TestRequestLogger_RecordsRouteAndServesMetrics(t *testing.T) {
	m := NewMetrics()
	app := fiber.New()
	app.Use(RequestLogger(nil, m))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	app.Get("/metrics", m.Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/ping", "GET", "200")))

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "identity_http_requests_total")
}
