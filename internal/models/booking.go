package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// Booking is an immutable snapshot once written: TotalPrice and every line-item
// price are frozen inside the creation transaction and never recomputed.
// Only Status and IsPaid change afterwards.
type Booking struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         string        `gorm:"not null;index" json:"user_id"`
	EventDateID    uuid.UUID     `gorm:"type:uuid;not null" json:"event_date_id"`
	PricingPlanID  uuid.UUID     `gorm:"type:uuid;not null;index" json:"pricing_plan_id"`
	GroupSizeID    uuid.UUID     `gorm:"type:uuid;not null" json:"group_size_id"`
	HotelBookingID *uuid.UUID    `gorm:"type:uuid" json:"hotel_booking_id,omitempty"`
	Status         BookingStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	TotalPrice     float64       `gorm:"not null" json:"total_price"`
	IsPaid         bool          `gorm:"not null;default:false" json:"is_paid"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	EventDate    *EventDate     `gorm:"foreignKey:EventDateID" json:"event_date,omitempty"`
	PricingPlan  *PricingPlan   `gorm:"foreignKey:PricingPlanID" json:"pricing_plan,omitempty"`
	GroupSize    *GroupSize     `gorm:"foreignKey:GroupSizeID" json:"group_size,omitempty"`
	HotelBooking *HotelBooking  `gorm:"foreignKey:HotelBookingID" json:"hotel_booking,omitempty"`
	Rooms        []BookingRoom  `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" json:"rooms,omitempty"`
	AddOns       []BookingAddOn `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" json:"add_ons,omitempty"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// BookingRoom is a room line item. Price is the per-room price at booking time.
type BookingRoom struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;not null;index" json:"booking_id"`
	RoomID    uuid.UUID `gorm:"type:uuid;not null;index" json:"room_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	Price     float64   `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`

	Room *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

func (r *BookingRoom) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BookingAddOn is an add-on line item, optionally pinned to a time slot.
// Price is the effective per-unit price at booking time (slot override wins).
type BookingAddOn struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"booking_id"`
	AddOnID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"add_on_id"`
	TimeSlotID *uuid.UUID `gorm:"type:uuid;index" json:"time_slot_id,omitempty"`
	Quantity   int        `gorm:"not null;default:1" json:"quantity"`
	Price      float64    `gorm:"not null" json:"price"`
	CreatedAt  time.Time  `json:"created_at"`

	AddOn    *AddOn         `gorm:"foreignKey:AddOnID" json:"add_on,omitempty"`
	TimeSlot *AddOnTimeSlot `gorm:"foreignKey:TimeSlotID" json:"time_slot,omitempty"`
}

func (a *BookingAddOn) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
