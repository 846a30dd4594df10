package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/jobnav-app/jobnav-backend/internal/applications/domain"
)

// Repository performs point reads and writes against one principal's
// job_applications collection. Every operation is scoped by the collection
// path artifacts/{namespace}/users/{uid}/job_applications, so it can never
// touch another principal's data.
type Repository struct {
	client    *firestore.Client
	namespace string
}

func New(client *firestore.Client, namespace string) *Repository {
	return &Repository{
		client:    client,
		namespace: namespace,
	}
}

func (r *Repository) collection(uid string) *firestore.CollectionRef {
	return r.client.Collection("artifacts").
		Doc(r.namespace).
		Collection("users").
		Doc(uid).
		Collection("job_applications")
}

// applicationDoc is the stored document shape. Dates are pointers so an
// absent calendar date persists as null, never as an invalid timestamp.
type applicationDoc struct {
	Title        string     `firestore:"title"`
	Company      string     `firestore:"company"`
	Link         string     `firestore:"link"`
	Status       string     `firestore:"status"`
	DateApplied  *time.Time `firestore:"dateApplied"`
	FollowUpDate *time.Time `firestore:"followUpDate"`
	Notes        string     `firestore:"notes"`
}

// draftToDoc converts date strings to store timestamps. This is the only
// place the conversion happens on the write path.
func draftToDoc(draft *domain.Draft) (*applicationDoc, error) {
	applied, err := domain.ParseDate(draft.DateApplied)
	if err != nil {
		return nil, err
	}
	followUp, err := domain.ParseDate(draft.FollowUpDate)
	if err != nil {
		return nil, err
	}

	doc := &applicationDoc{
		Title:   draft.Title,
		Company: draft.Company,
		Link:    draft.Link,
		Status:  string(draft.Status),
		Notes:   draft.Notes,
	}
	if !applied.IsZero() {
		doc.DateApplied = &applied
	}
	if !followUp.IsZero() {
		doc.FollowUpDate = &followUp
	}
	return doc, nil
}

func docToDomain(id string, doc *applicationDoc) domain.JobApplication {
	app := domain.JobApplication{
		ID:      id,
		Title:   doc.Title,
		Company: doc.Company,
		Link:    doc.Link,
		Status:  domain.Status(doc.Status),
		Notes:   doc.Notes,
	}
	if doc.DateApplied != nil {
		app.DateApplied = *doc.DateApplied
	}
	if doc.FollowUpDate != nil {
		app.FollowUpDate = *doc.FollowUpDate
	}
	return app
}

// Save creates the draft as a new record (store-assigned id) or overwrites
// the mutable fields of the existing record when the draft carries an id.
func (r *Repository) Save(ctx context.Context, uid string, draft *domain.Draft) error {
	if err := draft.Validate(); err != nil {
		return err
	}

	doc, err := draftToDoc(draft)
	if err != nil {
		return err
	}

	if draft.ID != "" {
		if _, err := r.collection(uid).Doc(draft.ID).Set(ctx, doc); err != nil {
			return fmt.Errorf("update application %s: %w", draft.ID, err)
		}
		return nil
	}

	if _, _, err := r.collection(uid).Add(ctx, doc); err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

// Delete permanently removes one record. Callers are responsible for an
// explicit confirmation step before invoking this.
func (r *Repository) Delete(ctx context.Context, uid, id string) error {
	if _, err := r.collection(uid).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete application %s: %w", id, err)
	}
	return nil
}

// Get fetches a single record by id.
func (r *Repository) Get(ctx context.Context, uid, id string) (*domain.JobApplication, error) {
	snap, err := r.collection(uid).Doc(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get application %s: %w", id, err)
	}
	if !snap.Exists() {
		return nil, domain.ErrNotFound
	}
	var doc applicationDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decode application %s: %w", id, err)
	}
	app := docToDomain(snap.Ref.ID, &doc)
	return &app, nil
}

// List fetches the complete record set once, sorted newest application
// first, undated records last.
func (r *Repository) List(ctx context.Context, uid string) ([]domain.JobApplication, error) {
	snaps, err := r.collection(uid).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}

	list := make([]domain.JobApplication, 0, len(snaps))
	for _, snap := range snaps {
		var doc applicationDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode application %s: %w", snap.Ref.ID, err)
		}
		list = append(list, docToDomain(snap.Ref.ID, &doc))
	}

	domain.SortByDateApplied(list)
	return list, nil
}
