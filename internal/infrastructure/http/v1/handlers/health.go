package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ReadinessChecker reports whether a dependency can serve requests.
// *postgres.Pool satisfies it.
type ReadinessChecker interface {
	Ready(ctx context.Context) error
}

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	db ReadinessChecker
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db ReadinessChecker) *HealthHandler {
	return &HealthHandler{db: db}
}

// Live handles liveness probe (is the process alive?).
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready handles readiness probe (is the service ready to accept traffic?).
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.db.Ready(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"checks": map[string]string{
				"database": "unhealthy: " + err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"checks": map[string]string{
			"database": "healthy",
		},
	})
}
