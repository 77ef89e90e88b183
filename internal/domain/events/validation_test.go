package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fesdmit/portal/internal/domain/schema"
)

func validInput() Input {
	capacity := 50
	return Input{
		Title:    "Hack Day",
		Date:     "2025-05-01T10:00:00Z",
		Location: "Hall A",
		Capacity: &capacity,
		Tags:     []string{"tech"},
	}
}

func TestValidateInputAccepts(t *testing.T) {
	event, err := ValidateInput(validInput())
	require.NoError(t, err)
	require.Equal(t, "Hack Day", event.Title)
	require.Equal(t, time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC), event.Date.UTC())
	require.Equal(t, "Hall A", event.Location)
	require.NotNil(t, event.Capacity)
	require.Equal(t, 50, *event.Capacity)
	require.Equal(t, []string{"tech"}, event.Tags)
}

func TestValidateInputRequiredFields(t *testing.T) {
	_, err := ValidateInput(Input{})

	var verr *schema.ValidationError
	require.ErrorAs(t, err, &verr)

	missing := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		missing = append(missing, f.Field)
	}
	require.ElementsMatch(t, []string{"title", "date", "location"}, missing)
}

func TestValidateInputRejectsWhitespaceTitle(t *testing.T) {
	in := validInput()
	in.Title = "   "
	_, err := ValidateInput(in)

	var verr *schema.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "title", verr.Fields[0].Field)
}

func TestValidateInputRejectsBadDate(t *testing.T) {
	in := validInput()
	in.Date = "next tuesday"
	_, err := ValidateInput(in)

	var verr *schema.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "date", verr.Fields[0].Field)
}

func TestValidateInputNaiveDateIsUTC(t *testing.T) {
	in := validInput()
	in.Date = "2025-05-01T10:00:00"
	event, err := ValidateInput(in)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC), event.Date)
}

func TestValidateInputRejectsZeroCapacity(t *testing.T) {
	in := validInput()
	zero := 0
	in.Capacity = &zero
	_, err := ValidateInput(in)

	var verr *schema.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "capacity", verr.Fields[0].Field)
	require.Equal(t, "must be at least 1", verr.Fields[0].Message)
}

func TestDocumentOmitsAbsentOptionalFields(t *testing.T) {
	event, err := ValidateInput(Input{Title: "Quiz Night", Date: "2025-06-01T18:00:00Z", Location: "Lab 2"})
	require.NoError(t, err)

	doc := event.Document()
	require.NotContains(t, doc, "description")
	require.NotContains(t, doc, "capacity")
	require.NotContains(t, doc, "tags")
}
