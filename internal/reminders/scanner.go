// Package reminders scans every principal's applications for overdue
// follow-ups and reports them. It derives everything from the store and
// keeps no state of its own.
package reminders

import (
	"context"
	"fmt"
	"log"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/iterator"

	"github.com/jobnav-app/jobnav-backend/internal/applications/domain"
)

// Store is the read surface the scanner needs, satisfied by
// repository.Repository.
type Store interface {
	List(ctx context.Context, uid string) ([]domain.JobApplication, error)
}

type Scanner struct {
	users *fbauth.Client
	store Store
	now   func() time.Time
}

func NewScanner(users *fbauth.Client, store Store) *Scanner {
	return &Scanner{
		users: users,
		store: store,
		now:   time.Now,
	}
}

// Scan walks all provider users and logs each overdue follow-up. A failure
// for one user does not stop the scan.
func (s *Scanner) Scan(ctx context.Context) error {
	now := s.now()
	it := s.users.Users(ctx, "")

	for {
		user, err := it.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("iterate users: %w", err)
		}

		list, err := s.store.List(ctx, user.UID)
		if err != nil {
			log.Printf("[error] operation=reminder_scan uid=%s error=%v", user.UID, err)
			continue
		}

		for _, app := range list {
			if app.Overdue(now) {
				log.Printf("[reminder] uid=%s application=%s company=%s title=%q follow_up=%s",
					user.UID, app.ID, app.Company, app.Title, domain.FormatDate(app.FollowUpDate))
			}
		}
	}
}
