package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobnav-app/jobnav-backend/internal/auth"
	"github.com/jobnav-app/jobnav-backend/internal/auth/domain"
	"github.com/jobnav-app/jobnav-backend/internal/auth/identity"
	"github.com/jobnav-app/jobnav-backend/internal/auth/service"
)

type Handler struct {
	sessions *service.SessionService
}

func NewHandler(sessions *service.SessionService) *Handler {
	return &Handler{sessions: sessions}
}

// SignUp creates a new account and returns the provider session.
func (h *Handler) SignUp(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	session, err := h.sessions.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toSessionResponse(session))
}

// SignIn exchanges email/password credentials for a session.
func (h *Handler) SignIn(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	session, err := h.sessions.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSessionResponse(session))
}

// SignOut clears the current principal and revokes its refresh tokens.
func (h *Handler) SignOut(c *gin.Context) {
	if err := h.sessions.SignOut(c.Request.Context()); err != nil {
		respondAuthError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSession returns the authenticated principal for the request token.
func (h *Handler) GetSession(c *gin.Context) {
	uid := auth.PrincipalUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	c.JSON(http.StatusOK, sessionResponse{
		UID:   uid,
		Email: c.GetString(auth.CtxEmail),
	})
}

// toSessionResponse renders the bundle produced by one credential exchange.
// Responses are always built from the exchange's own bundle so a concurrent
// sign-in by another principal can never leak its tokens here.
func toSessionResponse(s *identity.Session) sessionResponse {
	if s == nil {
		return sessionResponse{}
	}
	return sessionResponse{
		UID:          s.UID,
		Email:        s.Email,
		IDToken:      s.IDToken,
		RefreshToken: s.RefreshToken,
	}
}

// respondAuthError maps the normalized auth taxonomy onto HTTP statuses.
// Raw provider text never reaches the response.
func respondAuthError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrAuthInProgress) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
		return
	}

	var authErr *domain.AuthError
	if !errors.As(err, &authErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "authentication failed"})
		return
	}

	status := http.StatusBadRequest
	switch authErr.Code {
	case domain.ErrInvalidCredentials.Code, domain.ErrUserNotFound.Code:
		status = http.StatusUnauthorized
	case domain.ErrEmailInUse.Code:
		status = http.StatusConflict
	case domain.ErrProviderUnreachable.Code:
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": authErr.Message})
}
