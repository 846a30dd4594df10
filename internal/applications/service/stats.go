package service

import (
	"math"
	"time"

	"github.com/jobnav-app/jobnav-backend/internal/applications/domain"
)

// Filter modes beyond an exact status match.
const (
	FilterAll      = "All"
	FilterFollowUp = "FollowUp"
)

// Stats is the dashboard summary derived from the current record list.
// It is never persisted.
type Stats struct {
	Total            int     `json:"total"`
	Interviews       int     `json:"interviews"`
	Offers           int     `json:"offers"`
	Rejected         int     `json:"rejected"`
	OverdueFollowUps int     `json:"overdue_follow_ups"`
	OfferRate        float64 `json:"offer_rate"`
}

// ComputeStats aggregates the list at the given evaluation instant.
// Interview counting is an exact match against the interview statuses.
func ComputeStats(list []domain.JobApplication, now time.Time) Stats {
	s := Stats{Total: len(list)}
	for _, app := range list {
		switch app.Status {
		case domain.StatusInterviewing, domain.StatusTechnicalScreen:
			s.Interviews++
		case domain.StatusOffer:
			s.Offers++
		case domain.StatusRejected:
			s.Rejected++
		}
		if app.Overdue(now) {
			s.OverdueFollowUps++
		}
	}
	if s.Total > 0 {
		s.OfferRate = math.Round(float64(s.Offers)/float64(s.Total)*1000) / 10
	}
	return s
}

// Filter returns the subset of the list selected by mode: "All" is the
// identity, "FollowUp" keeps only overdue records, anything else is an exact
// status match. Order is preserved.
func Filter(list []domain.JobApplication, mode string, now time.Time) []domain.JobApplication {
	if mode == "" || mode == FilterAll {
		return list
	}

	out := make([]domain.JobApplication, 0, len(list))
	for _, app := range list {
		switch mode {
		case FilterFollowUp:
			if app.Overdue(now) {
				out = append(out, app)
			}
		default:
			if app.Status == domain.Status(mode) {
				out = append(out, app)
			}
		}
	}
	return out
}
