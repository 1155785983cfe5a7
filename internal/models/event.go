package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	EventType   string    `json:"event_type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Dates []EventDate `gorm:"foreignKey:EventID" json:"dates,omitempty"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// EventDate is one occurrence of an event in a city; pricing plans hang off it.
type EventDate struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_date_city" json:"event_id"`
	Date        time.Time `gorm:"not null;uniqueIndex:idx_event_date_city" json:"date"`
	City        string    `gorm:"not null;uniqueIndex:idx_event_date_city" json:"city"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Event        *Event        `gorm:"foreignKey:EventID" json:"event,omitempty"`
	PricingPlans []PricingPlan `gorm:"foreignKey:EventDateID" json:"pricing_plans,omitempty"`
}

func (d *EventDate) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
