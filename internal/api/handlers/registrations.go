package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fesdmit/portal/internal/api/problem"
	"github.com/fesdmit/portal/internal/domain/registrations"
)

type RegistrationsHandler struct {
	Service *registrations.Service
	Env     string
}

func NewRegistrationsHandler(service *registrations.Service, env string) *RegistrationsHandler {
	return &RegistrationsHandler{Service: service, Env: env}
}

func (h *RegistrationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", nil, h.Env)
		return
	}

	var input registrations.Input
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

func (h *RegistrationsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Service == nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", nil, h.Env)
		return
	}

	query := r.URL.Query()
	eventID := strings.TrimSpace(query.Get("event_id"))
	email := strings.TrimSpace(query.Get("email"))

	docs, err := h.Service.List(r.Context(), eventID, email)
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
