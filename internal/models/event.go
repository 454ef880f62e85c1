package models

import (
	"time"

	"github.com/lib/pq"
)

// Event is a discoverable event users can join and chat about. The chat
// subsystem only needs its ID; the rest is served by the discovery API.
type Event struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"type:text;not null" json:"title"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	// Tags drive interest-based discovery.
	Tags      pq.StringArray `gorm:"type:text[]" json:"tags,omitempty"`
	StartsAt  time.Time      `json:"startsAt"`
	CreatedAt time.Time      `json:"createdAt"`
}
