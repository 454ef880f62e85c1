package models

import "gorm.io/gorm"

// Participation statuses. "none" is never stored; it is what the oracle
// reports when no row exists for an (event, user) pair.
const (
	ParticipationAttending  = "attending"
	ParticipationInterested = "interested"
	ParticipationNone       = "none"
)

// Participation records a user's relationship to an event. The chat
// subsystem reads it at join time and never writes it.
type Participation struct {
	gorm.Model

	EventID string `gorm:"type:text;not null;uniqueIndex:idx_event_user"`
	UserID  string `gorm:"type:text;not null;uniqueIndex:idx_event_user"`
	// Status is "attending" or "interested".
	Status string `gorm:"type:text;not null"`
}

// ValidParticipationStatus reports whether s is a status the API accepts.
func ValidParticipationStatus(s string) bool {
	switch s {
	case ParticipationAttending, ParticipationInterested, ParticipationNone:
		return true
	}
	return false
}
