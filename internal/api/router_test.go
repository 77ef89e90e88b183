package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/fesdmit/portal/internal/config"
	"github.com/fesdmit/portal/internal/storage/memstore"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Config{
		CORS:        config.CORSConfig{AllowAllOrigins: true},
		Environment: "test",
	}
	return NewRouter(cfg, zerolog.Nop(), memstore.New())
}

func TestRootMessage(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "running")
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	for path, want := range map[string]string{
		"/healthz": "ok",
		"/readyz":  "ready",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, path)
		require.Contains(t, rec.Body.String(), want, path)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/events", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "GET, POST", rec.Header().Get("Allow"))
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/events", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDHeaderAssigned(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

// End-to-end: create an event, register for it, read both back through the
// public API.
func TestCreateAndListFlow(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/events",
		`{"title":"Hack Day","date":"2025-05-01T10:00:00Z","location":"Hall A","capacity":50,"tags":["tech"]}`))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/events?tag=tech", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var eventItems []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &eventItems))
	require.Len(t, eventItems, 1)
	require.Equal(t, created.ID, eventItems[0]["id"])
	require.Equal(t, "Hack Day", eventItems[0]["title"])
	require.Equal(t, "2025-05-01T10:00:00Z", eventItems[0]["date"])
	require.Equal(t, float64(50), eventItems[0]["capacity"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/registrations",
		`{"event_id":"`+created.ID+`","name":"Jane Doe","email":"jane@example.com"}`))
	require.Equal(t, http.StatusCreated, rec.Code)

	var reg struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reg))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/registrations?event_id="+created.ID, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var regItems []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &regItems))
	require.Len(t, regItems, 1)
	require.Equal(t, reg.ID, regItems[0]["id"])
	require.Equal(t, "Jane Doe", regItems[0]["name"])
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}
