package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	status := gin.H{"status": "healthy", "service": "store-api"}

	if h.health != nil {
		if err := h.health.Ping(); err != nil {
			status["status"] = "degraded"
			status["database"] = "down"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		status["database"] = "up"
	}

	c.JSON(http.StatusOK, status)
}
