package middlewares

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	reqlog "registrar_backend/internals/middlewares/logger"
)

const sampleUUID = "123e4567-e89b-12d3-a456-426614174000"

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
}

func get(t *testing.T, app *fiber.App, target string) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

func TestUUIDPathFilter(t *testing.T) {
	app := newTestApp()
	api := app.Group("/api", UUIDPathFilter("/api", "course", "testRun"))
	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	api.Get("/course", ok)
	api.Get("/course/:uuid", ok)
	api.Get("/testRun/:uuid", ok)
	api.Get("/other/:id", ok)

	cases := []struct {
		target string
		status int
	}{
		{"/api/course", fiber.StatusOK},
		{"/api/course/" + sampleUUID, fiber.StatusOK},
		{"/api/testRun/123E4567-E89B-12D3-A456-426614174000", fiber.StatusOK},
		{"/api/course/not-a-uuid", fiber.StatusBadRequest},
		{"/api/testRun/" + sampleUUID[:35], fiber.StatusBadRequest},
		{"/api/course/123e4567e89b12d3a456426614174000", fiber.StatusBadRequest},
		{"/api/other/42", fiber.StatusOK},
		{"/api/COURSE/not-a-uuid", fiber.StatusBadRequest},
		{"/API/Course/not-a-uuid", fiber.StatusBadRequest},
		{"/api/testrun/" + sampleUUID, fiber.StatusOK},
	}
	for _, tc := range cases {
		resp, body := get(t, app, tc.target)
		assert.Equal(t, tc.status, resp.StatusCode, tc.target)
		if tc.status == fiber.StatusBadRequest {
			assert.Contains(t, body, `"error_code":"BAD_REQUEST"`)
		}
	}
}

func TestSetupMiddlewares_RecoversPanics(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	app := newTestApp()
	SetupMiddlewares(app, Options{Log: zap.New(core)})
	app.Get("/boom", func(c *fiber.Ctx) error { panic("kaboom") })

	resp, body := get(t, app, "/boom")
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body, `"error_code":"INTERNAL_ERROR"`)
	assert.NotContains(t, body, "kaboom")
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestSetupMiddlewares_RequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	app := newTestApp()
	SetupMiddlewares(app, Options{Log: zap.New(core)})
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(reqlog.HeaderRequestID, "req-1")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "req-1", resp.Header.Get(reqlog.HeaderRequestID))

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
	assert.EqualValues(t, fiber.StatusOK, entries[0].ContextMap()["status"])

	resp, _ = get(t, app, "/ping")
	assert.NotEmpty(t, resp.Header.Get(reqlog.HeaderRequestID))
}

func TestGlobalRateLimiter(t *testing.T) {
	app := newTestApp()
	app.Use(GlobalRateLimiter(2))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	for i := 0; i < 2; i++ {
		resp, _ := get(t, app, "/")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
	resp, body := get(t, app, "/")
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Contains(t, body, "RATE_LIMITED")

	open := newTestApp()
	open.Use(GlobalRateLimiter(0))
	open.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })
	for i := 0; i < 5; i++ {
		resp, _ := get(t, open, "/")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
}

func TestCorsMiddleware(t *testing.T) {
	app := newTestApp()
	app.Use(CorsMiddleware([]string{"https://portal.example.edu"}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://portal.example.edu")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "https://portal.example.edu", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "true", resp.Header.Get(fiber.HeaderAccessControlAllowCredentials))

	assert.True(t, containsWildcard([]string{"https://a", " * "}))
	assert.False(t, containsWildcard(nil))
}

func TestHTTPMetrics(t *testing.T) {
	m := NewHTTPMetrics()
	app := newTestApp()
	app.Use(m.Middleware())
	app.Get("/metrics", m.Handler())
	app.Get("/api/course/:uuid", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNotFound) })

	resp, _ := get(t, app, "/api/course/"+sampleUUID)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, body := get(t, app, "/metrics")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `registrar_http_requests_total{method="GET",route="/api/course/:uuid",status="404"} 1`)
	assert.Contains(t, body, "registrar_http_request_duration_seconds")
	assert.Contains(t, body, "go_goroutines")
}

func TestErrorHandler(t *testing.T) {
	app := newTestApp()
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusForbidden, "nope") })
	app.Get("/plain", func(c *fiber.Ctx) error { return io.ErrUnexpectedEOF })

	resp, body := get(t, app, "/teapot")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, `"message":"nope"`)

	resp, body = get(t, app, "/plain")
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, body, "unexpected EOF")
}
