package events

import (
	"strings"
	"time"

	"github.com/fesdmit/portal/internal/domain/schema"
	"github.com/fesdmit/portal/internal/storage"
)

// Input is the raw create-event request body.
type Input struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Date        string   `json:"date" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	Capacity    *int     `json:"capacity" validate:"omitempty,min=1"`
	Tags        []string `json:"tags"`
}

// Event is a validated event record ready for storage. Capacity is never
// enforced against registration counts; it is advisory data only.
type Event struct {
	Title       string
	Description string
	Date        time.Time
	Location    string
	Capacity    *int
	Tags        []string
}

// ValidateInput checks input against the event schema and returns a validated
// record or a schema.ValidationError listing every offending field. Pure: no
// I/O, no clock.
func ValidateInput(input Input) (Event, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Location = strings.TrimSpace(input.Location)

	fields := schema.Check(input)

	var date time.Time
	if input.Date != "" {
		parsed, err := schema.ParseTimestamp(input.Date)
		if err != nil {
			fields = append(fields, schema.FieldError{Field: "date", Message: "must be an ISO-8601 timestamp"})
		} else {
			date = parsed
		}
	}

	if len(fields) > 0 {
		return Event{}, &schema.ValidationError{Fields: fields}
	}

	return Event{
		Title:       input.Title,
		Description: input.Description,
		Date:        date,
		Location:    input.Location,
		Capacity:    input.Capacity,
		Tags:        input.Tags,
	}, nil
}

// Document renders the event as a storage record. Optional fields that were
// not submitted are omitted rather than stored as nulls.
func (e Event) Document() storage.Document {
	doc := storage.Document{
		"title":    e.Title,
		"date":     e.Date,
		"location": e.Location,
	}
	if e.Description != "" {
		doc["description"] = e.Description
	}
	if e.Capacity != nil {
		doc["capacity"] = *e.Capacity
	}
	if e.Tags != nil {
		doc["tags"] = e.Tags
	}
	return doc
}
