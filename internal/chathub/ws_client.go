package chathub

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"meetgogo/backend/internal/auth"
	"meetgogo/backend/internal/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/samber/lo"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	// maxMessageSize leaves headroom for a 1000-rune message plus the
	// JSON envelope.
	maxMessageSize = 8192

	sendBufferSize = 256
)

// WebSocketClient implements Client on top of a gorilla/websocket
// connection.
type WebSocketClient struct {
	connID   string
	identity auth.Identity

	Conn    *websocket.Conn
	Gateway *Gateway
	Send    chan models.OutboundEvent

	mu        sync.Mutex
	rooms     map[string]struct{}
	closeOnce sync.Once
}

func NewWebSocketClient(gateway *Gateway, identity auth.Identity, conn *websocket.Conn) *WebSocketClient {
	return &WebSocketClient{
		connID:   uuid.New().String(),
		identity: identity,
		Conn:     conn,
		Gateway:  gateway,
		Send:     make(chan models.OutboundEvent, sendBufferSize),
		rooms:    make(map[string]struct{}),
	}
}

func (c *WebSocketClient) GetConnID() string    { return c.connID }
func (c *WebSocketClient) GetUserID() string    { return c.identity.UserID }
func (c *WebSocketClient) GetUserName() string  { return c.identity.UserName }
func (c *WebSocketClient) GetUserImage() string { return c.identity.UserImage }

func (c *WebSocketClient) GetSendChannel() chan<- models.OutboundEvent { return c.Send }

func (c *WebSocketClient) AddRoom(roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rooms[roomID] = struct{}{}
}

func (c *WebSocketClient) RemoveRoom(roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.rooms, roomID)
}

func (c *WebSocketClient) RoomIDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return lo.Keys(c.rooms)
}

// Run starts the read and write pumps.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close closes the Send channel, which stops the write pump. The read pump
// stops on its own once the connection is closed. Safe to call twice: the
// registry calls it on unregister and unregister can race the read pump's
// own teardown.
func (c *WebSocketClient) Close() {
	c.closeOnce.Do(func() {
		close(c.Send)
	})
}

func (c *WebSocketClient) readPump() {
	defer func() {
		c.Gateway.Disconnect(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading from connection %s: %v", c.connID, err)
			}
			break
		}
		c.Gateway.HandleEvent(c, message)
	}
}

func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed by the registry.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(event)
			if err != nil {
				log.Printf("error encoding event for connection %s: %v", c.connID, err)
				continue
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

			// Drain whatever queued up while we were writing.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				next, ok := <-c.Send
				if !ok {
					c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
					return
				}
				data, err := json.Marshal(next)
				if err != nil {
					continue
				}
				if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
					return
				}
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
