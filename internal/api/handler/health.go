package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Healthz is the liveness probe. It reports whether the chat subsystem has
// finished initializing; it carries no business logic.
func (h *Handler) Healthz(c *gin.Context) {
	if !h.ready.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "starting"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"connections": h.Registry.Count(),
	})
}
