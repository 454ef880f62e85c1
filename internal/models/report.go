package models

import "gorm.io/gorm"

// Report statuses.
const (
	ReportStatusNew      = "new"
	ReportStatusResolved = "resolved"
)

// MessageReport is a user complaint about a chat message, reviewed by
// moderators out of band.
type MessageReport struct {
	gorm.Model

	EventID    string `gorm:"type:text;not null;index"`
	MessageID  uint   `gorm:"index"`
	ReporterID string `gorm:"type:text;not null"`
	Reason     string `gorm:"type:text"`
	Status     string `gorm:"type:text;not null;index"` // "new", "resolved"
}
