package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PaymentPagado    = "PAGADO"
	PaymentPendiente = "PENDIENTE"
)

// BookingPlayer tracks one participant's share of a booking. Split
// payments append players; the booking's TotalPrice is never mutated.
type BookingPlayer struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BookingID uuid.UUID `gorm:"not null;index" json:"booking_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`

	// Amount in cents.
	AmountPaid    int64   `gorm:"not null;default:0" json:"amount_paid"`
	PaymentStatus string  `gorm:"size:20;not null;default:'PENDIENTE'" json:"payment_status"`
	PaymentMethod *string `gorm:"size:30" json:"payment_method"`

	Booking Booking `gorm:"foreignkey:BookingID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
