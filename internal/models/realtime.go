package models

import "time"

// Inbound event types (client -> server).
const (
	EventJoin        = "join-event"
	EventLeave       = "leave-event"
	EventSendMessage = "send-message"
	EventStartTyping = "start-typing"
	EventStopTyping  = "stop-typing"
	EventReport      = "report-message"
)

// Outbound event types (server -> client). Typing events reuse the inbound
// names so the client sees "typing"/"stop-typing" pairs.
const (
	EventUserJoined = "user-joined"
	EventUserLeft   = "user-left"
	EventNewMessage = "new-message"
	EventTyping     = "typing"
	EventError      = "error"
)

// InboundEvent is the envelope for every frame a client sends. Fields beyond
// Type and EventID are only meaningful for some event types.
type InboundEvent struct {
	Type      string `json:"type"`
	EventID   string `json:"eventId"`
	Content   string `json:"content,omitempty"`
	MessageID uint   `json:"messageId,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// OutboundEvent is the envelope for every frame pushed to a client. Only the
// fields relevant to Type are populated.
type OutboundEvent struct {
	Type      string    `json:"type"`
	RoomID    string    `json:"roomId,omitempty"`
	UserID    string    `json:"userId,omitempty"`
	UserName  string    `json:"userName,omitempty"`
	UserImage string    `json:"userImage,omitempty"`
	ID        uint      `json:"id,omitempty"`
	EventID   string    `json:"eventId,omitempty"`
	Content   string    `json:"content,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	// Message carries the text of an "error" event.
	Message string `json:"message,omitempty"`
}
