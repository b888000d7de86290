package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZinnunMalikov/clipsmart-main/internal/api"
	"github.com/ZinnunMalikov/clipsmart-main/internal/domain"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	w := newTestEnv(t).do(t, http.MethodPost, "/api/v1/classify", map[string]any{"text": "Meet me on 2024-03-15"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.ClassifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Result.Date)
	assert.Contains(t, resp.Categories, domain.CategoryDate)
}

func TestClassify_MissingText(t *testing.T) {
	t.Parallel()

	w := newTestEnv(t).do(t, http.MethodPost, "/api/v1/classify", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClassifyBatch(t *testing.T) {
	t.Parallel()

	texts := []string{"https://example.com", "hello world", "x^2"}
	w := newTestEnv(t).do(t, http.MethodPost, "/api/v1/classify/batch", map[string]any{"texts": texts})
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.BatchClassifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 3, resp.Total)
	assert.True(t, resp.Results[0].Result.Link)
	assert.Empty(t, resp.Results[1].Categories)
	assert.True(t, resp.Results[2].Result.Math)
}

func TestClassifyBatch_Limits(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/classify/batch", map[string]any{"texts": []string{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	tooMany := make([]string, 6)
	for i := range tooMany {
		tooMany[i] = fmt.Sprintf("t%d", i)
	}
	w = env.do(t, http.MethodPost, "/api/v1/classify/batch", map[string]any{"texts": tooMany})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListRequests(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	for _, text := range []string{"a", "b", "c"} {
		require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/process", map[string]any{"text": text}).Code)
	}

	w := env.do(t, http.MethodGet, "/api/v1/requests?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.RequestLogResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "fake", resp.Backend)

	w = env.do(t, http.MethodGet, "/api/v1/requests?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPIv1RequiresTokenWhenConfigured(t *testing.T) {
	t.Parallel()

	const secret = "s3cret"
	env := newTestEnv(t, withJWT(secret))

	w := env.do(t, http.MethodPost, "/api/v1/classify", map[string]any{"text": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The client endpoints stay open.
	w = env.do(t, http.MethodPost, "/process", map[string]any{"text": "x"})
	assert.Equal(t, http.StatusOK, w.Code)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "cli"}).SignedString([]byte(secret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/requests", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
