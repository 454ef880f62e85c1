package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// User represents a registered user of the platform.
type User struct {
	ID string `gorm:"primaryKey" json:"id"`
	// Name is the display name shown next to chat messages.
	Name string `gorm:"type:text;not null" json:"name"`
	// Image is an optional avatar URL.
	Image string `gorm:"type:text" json:"image,omitempty"`
	// Interests are free-form tags used by event discovery.
	Interests pq.StringArray `gorm:"type:text[]" json:"interests,omitempty"`
}

// BeforeCreate is a GORM hook that assigns a fresh UUID when the user
// is created without an explicit ID.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
