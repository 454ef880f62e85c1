package handler

import (
	"net/http"
	"strings"

	"meetgogo/backend/internal/chathub"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Lock down in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handshakeToken pulls the session token from the Authorization header or,
// for browser clients that cannot set headers on websocket dials, from the
// "token" query parameter.
func handshakeToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("token")
}

// ServeWebSocket authenticates the handshake and upgrades the connection.
// The transport is only accepted after authentication succeeds; failures
// are refused with the reason before any event is pumped.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	identity, err := h.Registry.Authenticate(handshakeToken(c))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := chathub.NewWebSocketClient(h.Gateway, identity, conn)
	h.Registry.Add(client)
	client.Run()
}
