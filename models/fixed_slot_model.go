package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	FixedSlotCliente       = "CLIENTE"
	FixedSlotEntrenamiento = "ENTRENAMIENTO"
)

// FixedSlot is a recurring weekly reservation rule (an "abono"). The rule
// itself occupies its window every week; concrete Booking rows are
// materialized from it ahead of time by the fixed-slot job.
type FixedSlot struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CourtID uuid.UUID `gorm:"not null;index" json:"court_id"`

	UserID     *uuid.UUID `json:"user_id"`
	ClientName string     `gorm:"size:255;not null" json:"client_name"`

	// 0 = Sunday ... 6 = Saturday, matching time.Weekday.
	DayOfWeek int    `gorm:"not null" json:"day_of_week"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	StartDate time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date"`

	// Price per occurrence, in cents.
	Price    int64  `gorm:"not null" json:"price"`
	Type     string `gorm:"size:20;not null;default:'CLIENTE'" json:"type"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	Court    Court     `gorm:"foreignkey:CourtID" json:"court,omitempty"`
	User     *User     `gorm:"foreignkey:UserID" json:"user,omitempty"`
	Bookings []Booking `gorm:"foreignkey:FixedSlotID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CoversDate reports whether the rule's validity range includes the given
// day (compared at date granularity, inclusive on both ends).
func (f *FixedSlot) CoversDate(date time.Time) bool {
	if date.Before(f.StartDate) {
		return false
	}
	if f.EndDate != nil && date.After(*f.EndDate) {
		return false
	}
	return true
}
