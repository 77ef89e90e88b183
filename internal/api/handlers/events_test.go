package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fesdmit/portal/internal/domain/events"
	"github.com/fesdmit/portal/internal/storage"
	"github.com/fesdmit/portal/internal/storage/memstore"
)

type failingStore struct {
	err error
}

func (s failingStore) Insert(context.Context, string, storage.Document) (string, error) {
	return "", s.err
}

func (s failingStore) Find(context.Context, string, storage.Filter) ([]storage.Document, error) {
	return nil, s.err
}

func postJSON(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestCreateEventReturnsID(t *testing.T) {
	store := memstore.New()
	h := NewEventsHandler(events.NewService(store), "test")

	rec := postJSON(t, h.Create, "/api/events",
		`{"title":"Hack Day","date":"2025-05-01T10:00:00Z","location":"Hall A","capacity":50,"tags":["tech"]}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	require.Equal(t, 1, store.Count(storage.CollectionEvents))
}

func TestCreateEventValidationFailureWritesNothing(t *testing.T) {
	store := memstore.New()
	h := NewEventsHandler(events.NewService(store), "test")

	rec := postJSON(t, h.Create, "/api/events", `{"description":"no required fields"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), "title")
	require.Contains(t, rec.Body.String(), "date")
	require.Contains(t, rec.Body.String(), "location")
	require.Zero(t, store.Count(storage.CollectionEvents))
}

func TestCreateEventMalformedJSON(t *testing.T) {
	h := NewEventsHandler(events.NewService(memstore.New()), "test")

	rec := postJSON(t, h.Create, "/api/events", `{"title": `)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateEventStoreUnavailable(t *testing.T) {
	h := NewEventsHandler(events.NewService(failingStore{err: storage.ErrUnavailable}), "test")

	rec := postJSON(t, h.Create, "/api/events",
		`{"title":"Hack Day","date":"2025-05-01T10:00:00Z","location":"Hall A"}`)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestListEventsShapesOutput(t *testing.T) {
	store := memstore.New()
	svc := events.NewService(store)
	h := NewEventsHandler(svc, "test")

	id, err := svc.Create(context.Background(), events.Input{
		Title:    "Hack Day",
		Date:     "2025-05-01T10:00:00Z",
		Location: "Hall A",
		Tags:     []string{"tech"},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/events?tag=tech", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	require.Equal(t, id, items[0]["id"])
	require.Equal(t, "Hack Day", items[0]["title"])
	require.Equal(t, "Hall A", items[0]["location"])
	require.Equal(t, "2025-05-01T10:00:00Z", items[0]["date"])
	require.NotContains(t, items[0], "_id")
}

func TestListEventsTagFilterIsExactMembership(t *testing.T) {
	store := memstore.New()
	svc := events.NewService(store)
	h := NewEventsHandler(svc, "test")
	ctx := context.Background()

	for _, tc := range []struct {
		title string
		tags  []string
	}{
		{"Concert", []string{"music"}},
		{"Marathon", []string{"sports"}},
		{"Festival", []string{"music", "sports"}},
		{"Recital", []string{"musical"}},
	} {
		_, err := svc.Create(ctx, events.Input{Title: tc.title, Date: "2025-05-01T10:00:00Z", Location: "Ground", Tags: tc.tags})
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/events?tag=music", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)
	require.Equal(t, "Concert", items[0]["title"])
	require.Equal(t, "Festival", items[1]["title"])
}

func TestListEventsEmptyCollection(t *testing.T) {
	h := NewEventsHandler(events.NewService(memstore.New()), "test")

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())
}
