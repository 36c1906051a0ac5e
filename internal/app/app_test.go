package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/mazes/internal/config"
)

func newTestApp(t *testing.T) http.Handler {
	t.Helper()
	a := New(slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	a.limits = &config.Limits{MaxSide: 16, DefaultAlgorithm: "dfs"}
	a.loadRoutes()
	return a.Handler()
}

func TestStatus(t *testing.T) {
	t.Setenv("APP_BASE_PATH", "")
	h := newTestApp(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set("Origin", "http://example.com")
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"ok"}`, rec.Body.String())
	assert.Equal(t, "http://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestBasePath(t *testing.T) {
	t.Setenv("APP_BASE_PATH", "/api")
	h := newTestApp(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/algorithms", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/algorithms", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
