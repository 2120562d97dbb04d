package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"trashapp/internal/response"
)

// HealthHandler reports service liveness.
type HealthHandler struct {
	version string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version}
}

// Check returns the service status
// @Summary     Health check
// @Tags        health
// @Produce     json
// @Success     200 {object} response.Envelope "Service status"
// @Router      /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	response.Success(c, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   h.version,
	}, "Service is healthy")
}
