package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TicketHold is a time-boxed soft reservation of plan tickets. It either gets
// consumed by a booking (deleted) or expires; expired rows stop counting
// against availability immediately and are swept by the reaper later.
//
// UserID is the holding subject: an account id or an anonymous session id.
type TicketHold struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          string    `gorm:"not null;index" json:"user_id"`
	PricingPlanID   uuid.UUID `gorm:"type:uuid;not null;index:idx_ticket_holds_plan_expiry" json:"pricing_plan_id"`
	NumberOfTickets int       `gorm:"not null" json:"number_of_tickets"`
	CreatedAt       time.Time `json:"created_at"`
	ExpiresAt       time.Time `gorm:"not null;index:idx_ticket_holds_plan_expiry" json:"expires_at"`

	PricingPlan *PricingPlan `gorm:"foreignKey:PricingPlanID" json:"pricing_plan,omitempty"`
	RoomHolds   []RoomHold   `gorm:"many2many:ticket_hold_room_holds" json:"room_holds,omitempty"`
}

func (h *TicketHold) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// Active reports whether the hold still counts against availability.
func (h *TicketHold) Active(asOf time.Time) bool {
	return h.ExpiresAt.After(asOf)
}

// RoomHold reserves a quantity of one room type. Linked room holds share the
// parent ticket hold's expiry and are extended together with it.
type RoomHold struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"not null" json:"user_id"`
	RoomID    uuid.UUID `gorm:"type:uuid;not null;index:idx_room_holds_room_expiry" json:"room_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `gorm:"not null;index:idx_room_holds_room_expiry" json:"expires_at"`

	Room *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

func (h *RoomHold) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
