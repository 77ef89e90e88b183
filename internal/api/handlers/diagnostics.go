package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/fesdmit/portal/internal/storage"
)

// maxListedCollections caps the collection names echoed by /test.
const maxListedCollections = 10

// Diagnostics reports store connectivity for operators and the frontend's
// setup page. It always answers 200; a broken or unconfigured store shows up
// in the body, never as a failed request.
type Diagnostics struct {
	Store         storage.Diagnoser
	URLConfigured bool
	DBConfigured  bool
}

type diagnosticsResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

func (d *Diagnostics) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := diagnosticsResponse{
		Backend:          "running",
		Database:         "not available",
		DatabaseURL:      configuredLabel(d.URLConfigured),
		DatabaseName:     configuredLabel(d.DBConfigured),
		ConnectionStatus: "not connected",
		Collections:      []string{},
	}

	if d.Store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := d.Store.Ping(ctx); err != nil {
			resp.Database = "error: " + truncate(err.Error(), 50)
		} else {
			resp.Database = "connected"
			resp.ConnectionStatus = "connected"
			if names, err := d.Store.Collections(ctx); err == nil {
				if len(names) > maxListedCollections {
					names = names[:maxListedCollections]
				}
				resp.Collections = names
			} else {
				resp.Database = "connected, listing failed: " + truncate(err.Error(), 50)
			}
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func configuredLabel(set bool) string {
	if set {
		return "set"
	}
	return "not set"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
