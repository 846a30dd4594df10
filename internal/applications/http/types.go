package http

import (
	"time"

	"github.com/jobnav-app/jobnav-backend/internal/applications/domain"
)

// applicationPayload is the create/edit form body. Dates travel as
// YYYY-MM-DD strings; conversion to store timestamps happens in the
// repository at the save boundary.
type applicationPayload struct {
	Title        string `json:"title" binding:"required"`
	Company      string `json:"company" binding:"required"`
	Link         string `json:"link"`
	Status       string `json:"status"`
	DateApplied  string `json:"dateApplied" binding:"required"`
	FollowUpDate string `json:"followUpDate"`
	Notes        string `json:"notes"`
}

func (p *applicationPayload) toDraft(id string) *domain.Draft {
	status := domain.Status(p.Status)
	if status == "" {
		status = domain.StatusApplied
	}
	return &domain.Draft{
		ID:           id,
		Title:        p.Title,
		Company:      p.Company,
		Link:         p.Link,
		Status:       status,
		DateApplied:  p.DateApplied,
		FollowUpDate: p.FollowUpDate,
		Notes:        p.Notes,
	}
}

type applicationResponse struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Company      string             `json:"company"`
	Link         string             `json:"link,omitempty"`
	Status       string             `json:"status"`
	StatusStyle  domain.StatusStyle `json:"statusStyle"`
	DateApplied  string             `json:"dateApplied"`
	FollowUpDate string             `json:"followUpDate,omitempty"`
	Notes        string             `json:"notes,omitempty"`
	Overdue      bool               `json:"overdue"`
}

func toResponse(app domain.JobApplication, now time.Time) applicationResponse {
	return applicationResponse{
		ID:           app.ID,
		Title:        app.Title,
		Company:      app.Company,
		Link:         domain.NormalizeLink(app.Link),
		Status:       string(app.Status),
		StatusStyle:  app.Status.Style(),
		DateApplied:  domain.FormatDate(app.DateApplied),
		FollowUpDate: domain.FormatDate(app.FollowUpDate),
		Notes:        app.Notes,
		Overdue:      app.Overdue(now),
	}
}

func toResponses(list []domain.JobApplication, now time.Time) []applicationResponse {
	out := make([]applicationResponse, 0, len(list))
	for _, app := range list {
		out = append(out, toResponse(app, now))
	}
	return out
}

type draftEmailRequest struct {
	Title   string `json:"title" binding:"required"`
	Company string `json:"company" binding:"required"`
	Status  string `json:"status"`
	Notes   string `json:"notes"`
}

type draftEmailResponse struct {
	Draft string `json:"draft"`
}
