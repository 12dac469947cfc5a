package models

import (
	"time"

	"github.com/google/uuid"
)

// PriceRule maps an hour range of the day to a price for one turn on a
// court. Ranges are half-open: a rule {StartHour: 9, EndHour: 23} covers
// bookings starting at 09:00 up to and excluding 23:00.
type PriceRule struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CourtID   uuid.UUID `gorm:"not null;index" json:"court_id"`
	StartHour int       `gorm:"not null" json:"start_hour"`
	EndHour   int       `gorm:"not null" json:"end_hour"`

	// Amounts in cents.
	Price         int64 `gorm:"not null" json:"price"`
	DepositAmount int64 `gorm:"not null;default:0" json:"deposit_amount"`

	Court Court `gorm:"foreignkey:CourtID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
