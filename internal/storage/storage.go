package storage

import "context"

// Collection names for the two record kinds this portal persists.
const (
	CollectionEvents        = "event"
	CollectionRegistrations = "registration"
)

// Document is one stored record: a mapping of field name to value. Identifier
// and timestamp values keep their storage-native types; output shaping is the
// caller's job.
type Document map[string]any

// DocumentStore is generic create/read access to named collections. A single
// store is opened at process start and injected into the services; all
// implementations must be safe for concurrent use.
type DocumentStore interface {
	// Insert persists doc into the named collection and returns the
	// store-assigned identifier as an opaque string.
	Insert(ctx context.Context, collection string, doc Document) (string, error)

	// Find returns all records in the named collection matching filter, in
	// natural storage order. No implicit limit is applied.
	Find(ctx context.Context, collection string, filter Filter) ([]Document, error)
}

// Diagnoser is implemented by stores that can report connectivity, used by
// the /test endpoint.
type Diagnoser interface {
	Ping(ctx context.Context) error
	Collections(ctx context.Context) ([]string, error)
}
