package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Store     string    `json:"store"`
}

type HealthHandler struct {
	serviceName string
	version     string
	storeReady  bool
}

func NewHealthHandler(serviceName, version string, storeReady bool) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		storeReady:  storeReady,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	store := "down"
	if h.storeReady {
		store = "up"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Store:     store,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
