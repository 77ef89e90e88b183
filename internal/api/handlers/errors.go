package handlers

import (
	"errors"
	"net/http"

	"github.com/fesdmit/portal/internal/api/problem"
	"github.com/fesdmit/portal/internal/domain/schema"
	"github.com/fesdmit/portal/internal/storage"
)

// writeError maps the error taxonomy onto problem responses: validation
// failures are the client's fault, storage faults are ours.
func writeError(w http.ResponseWriter, r *http.Request, err error, env string) {
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		p := problem.Details{
			Type:     problem.TypeValidation,
			Title:    "Invalid request",
			Status:   http.StatusBadRequest,
			Detail:   verr.Error(),
			Instance: r.URL.Path,
			Errors:   verr.Fields,
		}
		problem.WriteDetails(w, p)
		return
	}

	if errors.Is(err, storage.ErrUnavailable) {
		problem.Write(w, r, http.StatusServiceUnavailable, problem.TypeUnavailable, "Store unavailable", err, env)
		return
	}

	problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, env)
}
