package registrations

import (
	"strings"

	"github.com/fesdmit/portal/internal/domain/schema"
	"github.com/fesdmit/portal/internal/storage"
)

// Input is the raw create-registration request body. The event_id is taken
// on trust: nothing checks the referenced event exists, and nothing stops a
// student registering twice for the same event.
type Input struct {
	EventID    string `json:"event_id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Department string `json:"department"`
	Year       string `json:"year"`
	RollNo     string `json:"roll_no"`
	Phone      string `json:"phone"`
}

// Registration is a validated registration record ready for storage.
type Registration struct {
	EventID    string
	Name       string
	Email      string
	Department string
	Year       string
	RollNo     string
	Phone      string
}

// ValidateInput checks input against the registration schema. Pure: no I/O.
func ValidateInput(input Input) (Registration, error) {
	input.EventID = strings.TrimSpace(input.EventID)
	input.Name = strings.TrimSpace(input.Name)

	if fields := schema.Check(input); len(fields) > 0 {
		return Registration{}, &schema.ValidationError{Fields: fields}
	}

	return Registration{
		EventID:    input.EventID,
		Name:       input.Name,
		Email:      input.Email,
		Department: input.Department,
		Year:       input.Year,
		RollNo:     input.RollNo,
		Phone:      input.Phone,
	}, nil
}

// Document renders the registration as a storage record.
func (r Registration) Document() storage.Document {
	doc := storage.Document{
		"event_id": r.EventID,
		"name":     r.Name,
		"email":    r.Email,
	}
	if r.Department != "" {
		doc["department"] = r.Department
	}
	if r.Year != "" {
		doc["year"] = r.Year
	}
	if r.RollNo != "" {
		doc["roll_no"] = r.RollNo
	}
	if r.Phone != "" {
		doc["phone"] = r.Phone
	}
	return doc
}
