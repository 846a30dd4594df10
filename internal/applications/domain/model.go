package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Status is the closed set of pipeline states an application can be in.
type Status string

const (
	StatusApplied         Status = "Applied"
	StatusInterviewing    Status = "Interviewing"
	StatusTechnicalScreen Status = "Technical Screen"
	StatusOffer           Status = "Offer"
	StatusRejected        Status = "Rejected"
	StatusOnHold          Status = "On Hold"
)

// AllStatuses lists every valid status in display order.
var AllStatuses = []Status{
	StatusApplied,
	StatusInterviewing,
	StatusTechnicalScreen,
	StatusOffer,
	StatusRejected,
	StatusOnHold,
}

func (s Status) Valid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// StatusStyle carries the display attributes for a status badge.
type StatusStyle struct {
	Text       string `json:"text"`
	Background string `json:"background"`
	Border     string `json:"border"`
}

var statusStyles = map[Status]StatusStyle{
	StatusOffer:           {Text: "emerald-600", Background: "emerald-100", Border: "emerald-500"},
	StatusInterviewing:    {Text: "blue-600", Background: "blue-100", Border: "blue-500"},
	StatusTechnicalScreen: {Text: "blue-600", Background: "blue-100", Border: "blue-500"},
	StatusRejected:        {Text: "red-600", Background: "red-100", Border: "red-500"},
	StatusApplied:         {Text: "yellow-600", Background: "yellow-100", Border: "yellow-500"},
}

var defaultStyle = StatusStyle{Text: "gray-600", Background: "gray-100", Border: "gray-400"}

// Style returns the display attributes for the status. Unknown or unstyled
// statuses (On Hold) fall back to the neutral style.
func (s Status) Style() StatusStyle {
	if style, ok := statusStyles[s]; ok {
		return style
	}
	return defaultStyle
}

var ErrNotFound = errors.New("application not found")

// JobApplication is one tracked application. A zero DateApplied or
// FollowUpDate means the date is absent.
type JobApplication struct {
	ID           string
	Title        string
	Company      string
	Link         string
	Status       Status
	DateApplied  time.Time
	FollowUpDate time.Time
	Notes        string
}

// Overdue reports whether the follow-up date is present and strictly before
// now. An application with no follow-up date is never overdue.
func (j JobApplication) Overdue(now time.Time) bool {
	return !j.FollowUpDate.IsZero() && j.FollowUpDate.Before(now)
}

// SortByDateApplied orders the list newest application first. Records with
// no resolvable date sort after all dated ones.
func SortByDateApplied(list []JobApplication) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i].DateApplied, list[j].DateApplied
		if a.IsZero() {
			return false
		}
		if b.IsZero() {
			return true
		}
		return a.After(b)
	})
}

// DateLayout is the calendar-date wire format used by the UI and the form.
const DateLayout = "2006-01-02"

// ParseDate converts a YYYY-MM-DD string to a time. An empty string is a
// valid absent date and yields the zero time.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate is the inverse of ParseDate: zero time formats as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// NormalizeLink prefixes a scheme-less link with https:// for display.
func NormalizeLink(link string) string {
	if link == "" {
		return ""
	}
	if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link
	}
	return "https://" + link
}

// Draft is the transient working copy of one application held by the edit
// form. Dates stay as calendar-date strings until the save boundary.
type Draft struct {
	ID           string
	Title        string
	Company      string
	Link         string
	Status       Status
	DateApplied  string
	FollowUpDate string
	Notes        string
}

func (d *Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(d.Company) == "" {
		return fmt.Errorf("company is required")
	}
	if d.Status == "" {
		return fmt.Errorf("status is required")
	}
	if !d.Status.Valid() {
		return fmt.Errorf("unknown status %q", d.Status)
	}
	if d.DateApplied == "" {
		return fmt.Errorf("date applied is required")
	}
	if _, err := ParseDate(d.DateApplied); err != nil {
		return err
	}
	if _, err := ParseDate(d.FollowUpDate); err != nil {
		return err
	}
	return nil
}
