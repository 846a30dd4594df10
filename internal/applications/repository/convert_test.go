package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobnav-app/jobnav-backend/internal/applications/domain"
)

func TestDraftToDocRoundTrip(t *testing.T) {
	draft := &domain.Draft{
		ID:           "abc",
		Title:        "Backend Engineer",
		Company:      "Acme",
		Link:         "example.com/job",
		Status:       domain.StatusInterviewing,
		DateApplied:  "2024-03-01",
		FollowUpDate: "2024-03-15",
		Notes:        "phone screen went well",
	}

	doc, err := draftToDoc(draft)
	require.NoError(t, err)
	require.NotNil(t, doc.DateApplied)
	require.NotNil(t, doc.FollowUpDate)

	app := docToDomain("abc", doc)
	assert.Equal(t, "2024-03-01", domain.FormatDate(app.DateApplied))
	assert.Equal(t, "2024-03-15", domain.FormatDate(app.FollowUpDate))
	assert.Equal(t, domain.StatusInterviewing, app.Status)
	assert.Equal(t, draft.Title, app.Title)
	assert.Equal(t, draft.Company, app.Company)
	assert.Equal(t, draft.Notes, app.Notes)
}

func TestDraftToDoc_AbsentDatesStayAbsent(t *testing.T) {
	draft := &domain.Draft{
		Title:       "Backend Engineer",
		Company:     "Acme",
		Status:      domain.StatusApplied,
		DateApplied: "2024-03-01",
	}

	doc, err := draftToDoc(draft)
	require.NoError(t, err)
	assert.Nil(t, doc.FollowUpDate, "empty date string must persist as null, not a zero timestamp")

	app := docToDomain("id", doc)
	assert.True(t, app.FollowUpDate.IsZero())
	assert.False(t, app.Overdue(app.DateApplied.AddDate(1, 0, 0)))
}

func TestDraftToDoc_RejectsMalformedDates(t *testing.T) {
	draft := &domain.Draft{
		Title:       "Backend Engineer",
		Company:     "Acme",
		Status:      domain.StatusApplied,
		DateApplied: "March 1st",
	}

	_, err := draftToDoc(draft)
	require.Error(t, err)
}
