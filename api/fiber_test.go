package api

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunthewhat/easy-cert-form/internal/generator"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	app, err := NewApp(Dependencies{
		Generator: generator.NewMockGenerator(),
		Registry:  prometheus.NewRegistry(),
		BodyLimit: 1024 * 1024,
	})
	require.NoError(t, err)
	return app
}

func TestNewApp_ServesForm(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")
}

func TestNewApp_NotFound(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var response map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	assert.Equal(t, false, response["success"])
	assert.Equal(t, "GET /nope not found", response["message"])
}

func TestNewApp_Metrics(t *testing.T) {
	app := newTestApp(t)

	_, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `http_requests_total{method="GET",path="/",status="200"} 1`)
}

func TestNewApp_DuplicateRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()
	deps := Dependencies{Generator: generator.NewMockGenerator(), Registry: registry}

	_, err := NewApp(deps)
	require.NoError(t, err)

	_, err = NewApp(deps)
	assert.Error(t, err)
}

func TestCorsOrigins(t *testing.T) {
	assert.Equal(t, "*", corsOrigins(nil))
	assert.Equal(t, "https://a.example,https://b.example", corsOrigins([]string{"https://a.example", "https://b.example"}))
}
