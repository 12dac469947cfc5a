package models

import (
	"time"

	"github.com/google/uuid"
)

type Complex struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OwnerID uuid.UUID `gorm:"not null;index" json:"-"`
	Name    string    `gorm:"size:255;not null" json:"name"`
	Address *string   `gorm:"size:255" json:"address"`
	Phone   *string   `gorm:"size:30" json:"phone"`

	Owner  User    `gorm:"foreignkey:OwnerID" json:"-"`
	Courts []Court `gorm:"foreignkey:ComplexID" json:"courts,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
