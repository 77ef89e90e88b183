package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fesdmit/portal/internal/api/problem"
	"github.com/fesdmit/portal/internal/domain/events"
)

type EventsHandler struct {
	Service *events.Service
	Env     string
}

func NewEventsHandler(service *events.Service, env string) *EventsHandler {
	return &EventsHandler{Service: service, Env: env}
}

type createResponse struct {
	ID string `json:"id"`
}

func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", nil, h.Env)
		return
	}

	var input events.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request body", err, h.Env)
		return
	}

	id, err := h.Service.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err, h.Env)
		return
	}

	writeJSON(w, http.StatusCreated, createResponse{ID: id})
}

func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", nil, h.Env)
		return
	}

	tag := strings.TrimSpace(r.URL.Query().Get("tag"))
	docs, err := h.Service.List(r.Context(), tag)
	if err != nil {
		writeError(w, r, err, h.Env)
		return
	}

	items := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		items = append(items, shapeDocument(doc))
	}
	writeJSON(w, http.StatusOK, items)
}
