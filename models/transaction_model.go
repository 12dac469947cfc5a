package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TransactionIngreso = "INGRESO"
	TransactionEgreso  = "EGRESO"
)

// Transaction is a cash-register ledger entry for a complex.
type Transaction struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ComplexID uuid.UUID `gorm:"not null;index" json:"complex_id"`
	Type      string    `gorm:"size:10;not null" json:"type"`

	// Amount in cents, always positive; Type carries the sign.
	Amount        int64   `gorm:"not null" json:"amount"`
	Description   string  `gorm:"size:255;not null" json:"description"`
	PaymentMethod *string `gorm:"size:30" json:"payment_method"`

	BookingPlayerID *uuid.UUID `json:"booking_player_id"`

	Complex       Complex        `gorm:"foreignkey:ComplexID" json:"-"`
	BookingPlayer *BookingPlayer `gorm:"foreignkey:BookingPlayerID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
