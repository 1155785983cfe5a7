package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AddOn struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `json:"description"`
	Price        float64   `gorm:"not null" json:"price"`
	TotalTickets int       `gorm:"not null;default:0" json:"total_tickets"`
	MinPersons   int       `gorm:"not null;default:1" json:"min_persons"`
	HasTimeSlots bool      `gorm:"not null;default:false" json:"has_time_slots"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	TimeSlots []AddOnTimeSlot `gorm:"foreignKey:AddOnID" json:"time_slots,omitempty"`
}

func (a *AddOn) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AddOnTimeSlot carries its own capacity and, optionally, its own price.
type AddOnTimeSlot struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AddOnID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"add_on_id"`
	StartTime     time.Time  `gorm:"not null" json:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	TotalCapacity int        `gorm:"not null;default:0" json:"total_capacity"`
	PriceOverride *float64   `json:"price_override,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`

	AddOn *AddOn `gorm:"foreignKey:AddOnID" json:"add_on,omitempty"`
}

func (s *AddOnTimeSlot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// EffectivePrice is the slot override when set, otherwise the add-on price.
func (s *AddOnTimeSlot) EffectivePrice(addOn *AddOn) float64 {
	if s.PriceOverride != nil {
		return *s.PriceOverride
	}
	return addOn.Price
}
