package chathub

import "meetgogo/backend/internal/models"

// Client is the interface for one live, authenticated connection. It
// abstracts the underlying transport so the registry and room manager can
// handle websocket clients and test doubles uniformly.
type Client interface {
	// GetConnID returns the connection's own identifier, distinct from the
	// user id: one user may hold several connections.
	GetConnID() string
	GetUserID() string
	GetUserName() string
	GetUserImage() string

	// GetSendChannel returns the channel the room manager pushes outbound
	// events into. Sends are best-effort: a full channel means the
	// connection is stale or too slow and the event is dropped for it.
	GetSendChannel() chan<- models.OutboundEvent

	// AddRoom / RemoveRoom maintain the reciprocal side of room
	// membership; RoomIDs snapshots the rooms currently joined.
	AddRoom(roomID string)
	RemoveRoom(roomID string)
	RoomIDs() []string

	// Run starts the client's read and write pumps.
	Run()
	// Close releases the client's resources. Safe to call more than once.
	Close()
}
