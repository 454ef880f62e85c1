package handler

import (
	"net/http"
	"strings"

	"meetgogo/backend/internal/auth"
	"meetgogo/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type tokenRequest struct {
	Name  string `json:"name" binding:"required"`
	Image string `json:"image"`
}

// CreateToken registers a user and returns a session token for the
// websocket handshake.
func (h *Handler) CreateToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	user := &models.User{
		ID:    uuid.New().String(),
		Name:  req.Name,
		Image: req.Image,
	}
	if err := h.Storage.SaveUser(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := h.Auth.Token(auth.Identity{
		UserID:    user.ID,
		UserName:  user.Name,
		UserImage: user.Image,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "userId": user.ID})
}

// bearerIdentity resolves the identity behind an Authorization header for
// the plain REST endpoints.
func (h *Handler) bearerIdentity(c *gin.Context) (auth.Identity, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
		return auth.Identity{}, false
	}
	identity, err := h.Auth.Verify(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
		return auth.Identity{}, false
	}
	return identity, true
}
