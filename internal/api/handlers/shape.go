package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fesdmit/portal/internal/storage"
)

// timestampFields are normalized to RFC 3339 text on the way out. The store
// returns driver-native timestamp types; clients get strings.
var timestampFields = []string{"date", "created_at", "updated_at"}

// shapeDocument converts a stored record into its transport form: the
// internal _id becomes a hex "id" string and timestamp fields become
// RFC 3339 text. The input document is not modified.
func shapeDocument(doc storage.Document) map[string]any {
	out := make(map[string]any, len(doc)+1)
	for k, v := range doc {
		if k == "_id" {
			out["id"] = stringifyID(v)
			continue
		}
		out[k] = v
	}
	for _, field := range timestampFields {
		if value, ok := out[field]; ok {
			if text, ok := isoTimestamp(value); ok {
				out[field] = text
			}
		}
	}
	return out
}

func stringifyID(v any) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		data, err := json.Marshal(id)
		if err != nil {
			return ""
		}
		return string(data)
	}
}

func isoTimestamp(v any) (string, bool) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(time.RFC3339), true
	case primitive.DateTime:
		return t.Time().UTC().Format(time.RFC3339), true
	default:
		return "", false
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
