package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingPendiente  = "PENDIENTE"
	BookingConfirmado = "CONFIRMADO"
	BookingCompletado = "COMPLETADO"
	BookingCancelado  = "CANCELADO"
)

type Booking struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Code    string    `gorm:"size:10;not null;unique" json:"code"`
	CourtID uuid.UUID `gorm:"not null;index:idx_bookings_court_date" json:"court_id"`

	// Date is the day of the booking at UTC midnight; Time is the local
	// wall-clock start ("HH:mm") in the complex timezone. The occupied
	// range is [Time, Time+Court.SlotDuration).
	Date time.Time `gorm:"type:date;not null;index:idx_bookings_court_date" json:"date"`
	Time string    `gorm:"size:5;not null" json:"time"`

	Status string `gorm:"size:20;not null;default:'PENDIENTE'" json:"status"`

	// Amounts in cents.
	TotalPrice       int64 `gorm:"not null" json:"total_price"`
	DepositPaid      int64 `gorm:"not null;default:0" json:"deposit_paid"`
	RemainingBalance int64 `gorm:"not null" json:"remaining_balance"`

	GuestName  *string    `gorm:"size:255" json:"guest_name"`
	GuestPhone *string    `gorm:"size:30" json:"guest_phone"`
	UserID     *uuid.UUID `json:"user_id"`

	// Set when the booking was materialized from a recurring rule; such
	// bookings cannot change court, date, time or price on their own.
	FixedSlotID *uuid.UUID `gorm:"index" json:"fixed_slot_id"`

	Court     Court           `gorm:"foreignkey:CourtID" json:"court,omitempty"`
	User      *User           `gorm:"foreignkey:UserID" json:"user,omitempty"`
	FixedSlot *FixedSlot      `gorm:"foreignkey:FixedSlotID" json:"-"`
	Players   []BookingPlayer `gorm:"foreignkey:BookingID" json:"players,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName is the name surfaced in conflict messages and listings:
// the guest name, the linked user's name, or the booking code.
func (b *Booking) DisplayName() string {
	if b.GuestName != nil && *b.GuestName != "" {
		return *b.GuestName
	}
	if b.User != nil && b.User.FullName != "" {
		return b.User.FullName
	}
	return b.Code
}
