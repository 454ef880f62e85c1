package models

import "gorm.io/gorm"

// ChatHistory is a persisted chat message. The embedded gorm.Model provides
// the server-assigned ID and CreatedAt, which are the canonical message id
// and timestamp echoed back to clients.
type ChatHistory struct {
	gorm.Model

	// EventID identifies the room the message was sent to.
	EventID string `gorm:"type:text;not null;index:idx_event_msg"`
	// SenderID is the ID of the authoring user.
	SenderID string `gorm:"type:text;not null;index:idx_event_msg"`
	// SenderName and SenderImage are denormalized so history can be
	// rendered without a join against users.
	SenderName  string `gorm:"type:text;not null"`
	SenderImage string `gorm:"type:text"`
	// Content is the message text.
	Content string `gorm:"type:text;not null"`
}
