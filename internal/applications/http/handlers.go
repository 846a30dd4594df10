package http

import (
	"context"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jobnav-app/jobnav-backend/internal/applications/domain"
	"github.com/jobnav-app/jobnav-backend/internal/applications/repository"
	"github.com/jobnav-app/jobnav-backend/internal/applications/service"
	"github.com/jobnav-app/jobnav-backend/internal/assistant"
	"github.com/jobnav-app/jobnav-backend/internal/auth"
)

// Store is the per-principal record surface, satisfied by
// repository.Repository.
type Store interface {
	List(ctx context.Context, uid string) ([]domain.JobApplication, error)
	Save(ctx context.Context, uid string, draft *domain.Draft) error
	Delete(ctx context.Context, uid, id string) error
	Subscribe(ctx context.Context, uid string) *repository.Subscription
}

// Drafter generates follow-up email bodies, satisfied by assistant.Client.
type Drafter interface {
	DraftFollowUp(ctx context.Context, req assistant.DraftRequest) (string, error)
}

type Handler struct {
	store   Store
	drafter Drafter
	now     func() time.Time
}

func NewHandler(store Store, drafter Drafter) *Handler {
	return &Handler{
		store:   store,
		drafter: drafter,
		now:     time.Now,
	}
}

// List returns the principal's applications, optionally filtered by
// ?filter=<status>|All|FollowUp.
func (h *Handler) List(c *gin.Context) {
	uid := auth.PrincipalUID(c)

	list, err := h.store.List(c.Request.Context(), uid)
	if err != nil {
		log.Printf("[error] operation=list_applications uid=%s error=%v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load applications"})
		return
	}

	mode := c.DefaultQuery("filter", service.FilterAll)
	filtered := service.Filter(list, mode, h.now())
	c.JSON(http.StatusOK, gin.H{"applications": toResponses(filtered, h.now())})
}

// GetStats returns the derived dashboard summary.
func (h *Handler) GetStats(c *gin.Context) {
	uid := auth.PrincipalUID(c)

	list, err := h.store.List(c.Request.Context(), uid)
	if err != nil {
		log.Printf("[error] operation=application_stats uid=%s error=%v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load applications"})
		return
	}

	c.JSON(http.StatusOK, service.ComputeStats(list, h.now()))
}

// Create persists a new application; the store assigns the id.
func (h *Handler) Create(c *gin.Context) {
	h.save(c, "")
}

// Update overwrites the mutable fields of an existing application.
func (h *Handler) Update(c *gin.Context) {
	h.save(c, c.Param("id"))
}

func (h *Handler) save(c *gin.Context, id string) {
	uid := auth.PrincipalUID(c)

	var payload applicationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, company and dateApplied are required"})
		return
	}

	draft := payload.toDraft(id)
	if err := draft.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.Save(c.Request.Context(), uid, draft); err != nil {
		log.Printf("[error] operation=save_application uid=%s error=%v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save application"})
		return
	}

	if id == "" {
		c.Status(http.StatusCreated)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete permanently removes one application. The affirmative confirmation
// step is mandatory: requests without confirm=true are rejected before any
// store call.
func (h *Handler) Delete(c *gin.Context) {
	uid := auth.PrincipalUID(c)
	id := c.Param("id")

	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "deletion requires confirm=true"})
		return
	}

	if err := h.store.Delete(c.Request.Context(), uid, id); err != nil {
		log.Printf("[error] operation=delete_application uid=%s id=%s error=%v", uid, id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete application"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Stream pushes every store snapshot to the client as server-sent events
// until the client disconnects. Each event is the complete current record
// set, newest application first.
func (h *Handler) Stream(c *gin.Context) {
	uid := auth.PrincipalUID(c)

	sub := h.store.Subscribe(c.Request.Context(), uid)
	defer sub.Stop()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		list, ok := <-sub.C
		if !ok {
			return false
		}
		c.SSEvent("applications", toResponses(list, h.now()))
		return true
	})
}

// DraftEmail asks the assistant for a follow-up email body. The result is
// display-only and never persisted.
func (h *Handler) DraftEmail(c *gin.Context) {
	var req draftEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and company are required"})
		return
	}

	text, err := h.drafter.DraftFollowUp(c.Request.Context(), assistant.DraftRequest{
		Title:   req.Title,
		Company: req.Company,
		Status:  req.Status,
		Notes:   req.Notes,
	})
	if err != nil {
		log.Printf("[error] operation=draft_email uid=%s error=%v", auth.PrincipalUID(c), err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to draft email"})
		return
	}

	c.JSON(http.StatusOK, draftEmailResponse{Draft: text})
}
