package repository

import (
	"context"
	"log"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jobnav-app/jobnav-backend/internal/applications/domain"
)

// Subscription is a live view of one principal's record set. C carries
// complete snapshots, sorted newest first; only the most recent snapshot is
// retained, so a slow consumer never sees stale intermediate states. C is
// closed when the subscription ends.
type Subscription struct {
	C    <-chan []domain.JobApplication
	stop context.CancelFunc
}

// NewSubscription wraps an existing snapshot channel. Stop invokes cancel.
func NewSubscription(c <-chan []domain.JobApplication, cancel context.CancelFunc) *Subscription {
	return &Subscription{C: c, stop: cancel}
}

// Stop tears the listener down. No snapshots are delivered afterwards.
func (s *Subscription) Stop() {
	s.stop()
}

// Subscribe opens a snapshot listener on the principal's collection. With no
// principal the subscription is a no-op that delivers one empty list.
// Listener read errors are logged; consumers keep their last known value.
func (r *Repository) Subscribe(ctx context.Context, uid string) *Subscription {
	ch := make(chan []domain.JobApplication, 1)

	if uid == "" {
		ch <- []domain.JobApplication{}
		close(ch)
		return &Subscription{C: ch, stop: func() {}}
	}

	cctx, cancel := context.WithCancel(ctx)
	it := r.collection(uid).Snapshots(cctx)

	go func() {
		defer close(ch)
		defer it.Stop()

		for {
			snap, err := it.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled || cctx.Err() != nil {
					return
				}
				log.Printf("[error] operation=watch_applications uid=%s error=%v", uid, err)
				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				log.Printf("[error] operation=watch_applications uid=%s error=%v", uid, err)
				continue
			}

			list := make([]domain.JobApplication, 0, len(docs))
			for _, d := range docs {
				var doc applicationDoc
				if err := d.DataTo(&doc); err != nil {
					log.Printf("[warn] operation=watch_applications uid=%s doc=%s error=%v", uid, d.Ref.ID, err)
					continue
				}
				list = append(list, docToDomain(d.Ref.ID, &doc))
			}
			domain.SortByDateApplied(list)

			// Last write wins: drop an unconsumed older snapshot before
			// publishing the new one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- list:
			case <-cctx.Done():
				return
			}
		}
	}()

	return &Subscription{C: ch, stop: cancel}
}
