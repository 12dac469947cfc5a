package models

import (
	"time"

	"github.com/google/uuid"
)

type Court struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ComplexID uuid.UUID `gorm:"not null;index" json:"complex_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Sport     string    `gorm:"size:50;not null;default:'PADEL'" json:"sport"`

	// Length of one bookable turn, in minutes. A booking occupies
	// [time, time+SlotDuration) on the court's day grid.
	SlotDuration int  `gorm:"not null;default:90" json:"slot_duration"`
	IsActive     bool `gorm:"default:true" json:"is_active"`

	Complex    Complex     `gorm:"foreignkey:ComplexID" json:"-"`
	PriceRules []PriceRule `gorm:"foreignkey:CourtID" json:"price_rules,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
