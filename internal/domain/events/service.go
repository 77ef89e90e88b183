package events

import (
	"context"

	"github.com/fesdmit/portal/internal/metrics"
	"github.com/fesdmit/portal/internal/storage"
)

// Service composes validation with the document store. It is stateless; the
// injected store carries the only long-lived connection.
type Service struct {
	store storage.DocumentStore
}

func NewService(store storage.DocumentStore) *Service {
	return &Service{store: store}
}

// Create validates input and persists it, returning the store-assigned
// identifier. Nothing is written when validation fails.
func (s *Service) Create(ctx context.Context, input Input) (string, error) {
	event, err := ValidateInput(input)
	if err != nil {
		return "", err
	}
	id, err := s.store.Insert(ctx, storage.CollectionEvents, event.Document())
	if err != nil {
		return "", err
	}
	metrics.InsertedDocuments.WithLabelValues(storage.CollectionEvents).Inc()
	return id, nil
}

// List returns event records, optionally narrowed to those whose tags list
// contains tag exactly. Substring matches do not count.
func (s *Service) List(ctx context.Context, tag string) ([]storage.Document, error) {
	filter := storage.None()
	if tag != "" {
		filter = storage.Contains("tags", tag)
	}
	return s.store.Find(ctx, storage.CollectionEvents, filter)
}
