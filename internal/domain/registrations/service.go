package registrations

import (
	"context"

	"github.com/fesdmit/portal/internal/metrics"
	"github.com/fesdmit/portal/internal/storage"
)

type Service struct {
	store storage.DocumentStore
}

func NewService(store storage.DocumentStore) *Service {
	return &Service{store: store}
}

// Create validates input and persists it, returning the store-assigned
// identifier. Duplicate registrations are allowed and get distinct IDs.
func (s *Service) Create(ctx context.Context, input Input) (string, error) {
	reg, err := ValidateInput(input)
	if err != nil {
		return "", err
	}
	id, err := s.store.Insert(ctx, storage.CollectionRegistrations, reg.Document())
	if err != nil {
		return "", err
	}
	metrics.InsertedDocuments.WithLabelValues(storage.CollectionRegistrations).Inc()
	return id, nil
}

// List returns registration records, narrowed by eventID and email when
// non-empty. Both filters combine with AND; the email match is exact and
// case-sensitive.
func (s *Service) List(ctx context.Context, eventID, email string) ([]storage.Document, error) {
	filter := storage.None()
	switch {
	case eventID != "" && email != "":
		filter = storage.And(storage.Equals("event_id", eventID), storage.Equals("email", email))
	case eventID != "":
		filter = storage.Equals("event_id", eventID)
	case email != "":
		filter = storage.Equals("email", email)
	}
	return s.store.Find(ctx, storage.CollectionRegistrations, filter)
}
