package handler

import (
	"errors"
	"net/http"

	"meetgogo/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetChatHistory returns the latest messages of an event's chat room,
// oldest first.
func (h *Handler) GetChatHistory(c *gin.Context) {
	eventID := c.Param("id")
	if _, err := h.Storage.GetEventByID(c.Request.Context(), eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load event"})
		return
	}

	history, err := h.Storage.GetChatHistory(c.Request.Context(), eventID, h.HistoryLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": history})
}

type participationRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetParticipation lets a user mark themselves attending/interested/none
// for an event. The chat subsystem reads this state at join time.
func (h *Handler) SetParticipation(c *gin.Context) {
	identity, ok := h.bearerIdentity(c)
	if !ok {
		return
	}

	var req participationRequest
	if err := c.ShouldBindJSON(&req); err != nil || !models.ValidParticipationStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be attending, interested or none"})
		return
	}

	eventID := c.Param("id")
	if _, err := h.Storage.GetEventByID(c.Request.Context(), eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load event"})
		return
	}

	if err := h.Storage.SetParticipation(c.Request.Context(), eventID, identity.UserID, req.Status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update participation"})
		return
	}
	c.Status(http.StatusNoContent)
}
