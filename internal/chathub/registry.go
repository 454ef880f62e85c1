package chathub

import (
	"log"
	"sync"

	"meetgogo/backend/internal/auth"
	"meetgogo/backend/internal/models"
)

// SessionVerifier validates a handshake token and returns the identity it
// belongs to.
type SessionVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// AuthError is a fatal handshake failure; the transport connection is never
// accepted when one is returned.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string { return "auth: " + e.Reason }

// Registry tracks every live connection. All mutation goes through its
// methods; nothing else touches the client map.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]Client

	rooms    *RoomManager
	verifier SessionVerifier
}

func NewRegistry(rooms *RoomManager, verifier SessionVerifier) *Registry {
	return &Registry{
		clients:  make(map[string]Client),
		rooms:    rooms,
		verifier: verifier,
	}
}

// Authenticate resolves the token presented at connection time. Failures are
// AuthErrors whose reason is surfaced to the client before the transport is
// refused.
func (r *Registry) Authenticate(token string) (auth.Identity, error) {
	if token == "" {
		return auth.Identity{}, &AuthError{Reason: "no token"}
	}
	identity, err := r.verifier.Verify(token)
	if err != nil {
		log.Printf("rejected connection: %v", err)
		return auth.Identity{}, &AuthError{Reason: "invalid token"}
	}
	return identity, nil
}

// Add registers an authenticated client. Events for the connection are only
// pumped after this returns.
func (r *Registry) Add(c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c.GetConnID()] = c
}

// Unregister removes the connection and drops its membership from every room
// it had joined, broadcasting "user-left" to the remaining members.
// Idempotent: unknown connection ids are ignored.
func (r *Registry) Unregister(connID string) {
	r.mu.Lock()
	c, ok := r.clients[connID]
	if ok {
		delete(r.clients, connID)
	}
	r.mu.Unlock()
	if !ok {
		return
	}

	for _, roomID := range c.RoomIDs() {
		r.rooms.Leave(roomID, c)
	}
	c.Close()
	log.Printf("connection %s (user %s) unregistered", connID, c.GetUserID())
}

func (r *Registry) Get(connID string) (Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[connID]
	return c, ok
}

// Count returns the number of live connections.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// trySend pushes an event to a client without blocking. A stale or slow
// connection drops the event; the next transport disconnect reconciles it.
func trySend(c Client, ev models.OutboundEvent) {
	select {
	case c.GetSendChannel() <- ev:
	default:
		log.Printf("dropping %s event for stale connection %s", ev.Type, c.GetConnID())
	}
}
