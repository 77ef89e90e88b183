// Package problem writes RFC 7807 error responses.
package problem

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

const contentType = "application/problem+json"

// Problem type URIs for this API.
const (
	TypeValidation  = "https://fesdmit.app/problems/validation-error"
	TypeServerError = "https://fesdmit.app/problems/server-error"
	TypeUnavailable = "https://fesdmit.app/problems/store-unavailable"
)

type Details struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

// Write emits a problem response and logs it at a level matched to the
// status class. The error detail is exposed verbatim outside production;
// production gets the generic status text.
func Write(w http.ResponseWriter, r *http.Request, status int, typ, title string, err error, env string) {
	p := Details{
		Type:   typ,
		Title:  title,
		Status: status,
	}
	if err != nil {
		if env == "production" {
			p.Detail = http.StatusText(status)
		} else {
			p.Detail = err.Error()
		}
	}
	if r != nil {
		p.Instance = r.URL.Path
	}

	if err != nil && r != nil {
		logger := zerolog.Ctx(r.Context())
		evt := logger.Warn()
		if status >= 500 {
			evt = logger.Error()
		}
		evt.Err(err).
			Int("status", status).
			Str("type", typ).
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Msg(title)
	}

	WriteDetails(w, p)
}

// WriteDetails emits p as-is. Callers that need field-level errors populate
// Details.Errors before calling.
func WriteDetails(w http.ResponseWriter, p Details) {
	payload, err := json.Marshal(p)
	if err != nil {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"type":"about:blank","title":"Internal Server Error","status":500}`))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(p.Status)
	_, _ = w.Write(payload)
}
