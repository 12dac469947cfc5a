package models

import (
	"time"

	"github.com/google/uuid"
)

// BlockedSlot is a maintenance window created by a manager. It occupies
// [StartTime, EndTime) on a court without being a paying booking.
type BlockedSlot struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CourtID   uuid.UUID `gorm:"not null;index:idx_blocked_court_date" json:"court_id"`
	Date      time.Time `gorm:"type:date;not null;index:idx_blocked_court_date" json:"date"`
	StartTime string    `gorm:"size:5;not null" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`
	Reason    string    `gorm:"size:255;not null" json:"reason"`

	Court Court `gorm:"foreignkey:CourtID" json:"court,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
