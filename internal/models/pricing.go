package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PricingPlan is the ticket-capacity unit. TotalTickets is the fixed capacity;
// availability is always derived (total − confirmed persons − active held
// tickets), never stored.
type PricingPlan struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventDateID  uuid.UUID `gorm:"type:uuid;not null;index" json:"event_date_id"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `json:"description"`
	Price        float64   `gorm:"not null" json:"price"`
	TotalTickets int       `gorm:"not null;default:0" json:"total_tickets"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	EventDate  *EventDate  `gorm:"foreignKey:EventDateID" json:"event_date,omitempty"`
	GroupSizes []GroupSize `gorm:"foreignKey:PricingPlanID" json:"group_sizes,omitempty"`
}

func (p *PricingPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// GroupSize is the consumption unit for ticket counts: a booking always books
// one group size, consuming NumberOfPersons tickets from its plan.
type GroupSize struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PricingPlanID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_group_size_plan_persons" json:"pricing_plan_id"`
	NumberOfPersons int       `gorm:"not null;uniqueIndex:idx_group_size_plan_persons" json:"number_of_persons"`
	BasePrice       float64   `gorm:"not null" json:"base_price"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	PricingPlan *PricingPlan `gorm:"foreignKey:PricingPlanID" json:"pricing_plan,omitempty"`
}

func (g *GroupSize) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
