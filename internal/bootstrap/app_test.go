package bootstrap_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZinnunMalikov/clipsmart-main/internal/bootstrap"
	"github.com/ZinnunMalikov/clipsmart-main/internal/config"
	"github.com/ZinnunMalikov/clipsmart-main/internal/logger"
)

func minimalConfig() *config.Config {
	cfg := &config.Config{}
	config.SetDefaults(cfg)
	return cfg
}

func TestNewApp_MinimalConfigServes(t *testing.T) {
	app := bootstrap.NewApp(context.Background(), minimalConfig(), logger.NewNop())
	t.Cleanup(func() { _ = app.Close() })

	router := app.Server.Router()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/process", strings.NewReader(`{"text":"https://example.com"}`)))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["classification"].(map[string]any)["link"])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/create-calendar-event", strings.NewReader(`{"text":"tomorrow"}`)))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewApp_WithRedisHealthCheck(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := minimalConfig()
	cfg.Redis.Address = mr.Addr()

	app := bootstrap.NewApp(context.Background(), cfg, logger.NewNop())
	t.Cleanup(func() { _ = app.Close() })

	w := httptest.NewRecorder()
	app.Server.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string `json:"status"`
		Checks map[string]struct {
			Status string `json:"status"`
		} `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "healthy", body.Checks["redis"].Status)
	assert.Equal(t, "healthy", body.Checks["request_log"].Status)
}

func TestNewApp_UnreachableRedisDegrades(t *testing.T) {
	cfg := minimalConfig()
	cfg.Redis.Address = "127.0.0.1:1"

	app := bootstrap.NewApp(context.Background(), cfg, logger.NewNop())
	t.Cleanup(func() { _ = app.Close() })

	w := httptest.NewRecorder()
	app.Server.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"redis"`)
}
