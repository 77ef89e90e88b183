// Package memstore provides an in-memory document store with the same
// semantics as the MongoDB-backed one. It exists so handlers and services can
// be tested without a live database, and doubles as a throwaway dev backend.
package memstore

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fesdmit/portal/internal/storage"
)

type Store struct {
	mu          sync.RWMutex
	collections map[string][]storage.Document
}

func New() *Store {
	return &Store{collections: make(map[string][]storage.Document)}
}

// Insert copies doc, assigns an ObjectID under _id, stamps created_at and
// updated_at, and appends the record in insertion order.
func (s *Store) Insert(_ context.Context, collection string, doc storage.Document) (string, error) {
	record := make(storage.Document, len(doc)+3)
	for k, v := range doc {
		record[k] = v
	}

	id := primitive.NewObjectID()
	record["_id"] = id
	now := time.Now().UTC()
	if _, ok := record["created_at"]; !ok {
		record["created_at"] = now
	}
	if _, ok := record["updated_at"]; !ok {
		record["updated_at"] = now
	}

	s.mu.Lock()
	s.collections[collection] = append(s.collections[collection], record)
	s.mu.Unlock()
	return id.Hex(), nil
}

// Find returns copies of all matching records in insertion order.
func (s *Store) Find(_ context.Context, collection string, filter storage.Filter) ([]storage.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []storage.Document
	for _, record := range s.collections[collection] {
		if !filter.Matches(record) {
			continue
		}
		copied := make(storage.Document, len(record))
		for k, v := range record {
			copied[k] = v
		}
		out = append(out, copied)
	}
	return out, nil
}

// Ping always succeeds; memory is never unavailable.
func (s *Store) Ping(context.Context) error {
	return nil
}

// Collections lists non-empty collection names.
func (s *Store) Collections(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	return names, nil
}

// Count reports how many records the named collection holds.
func (s *Store) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection])
}
