package dto

import (
	"time"

	"github.com/google/uuid"
)

type RoomHoldRequest struct {
	RoomID   uuid.UUID `json:"room_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"required,gt=0"`
}

type CreateHoldRequest struct {
	UserID          string            `json:"user_id" validate:"required"`
	PricingPlanID   uuid.UUID         `json:"pricing_plan_id" validate:"required"`
	NumberOfTickets int               `json:"number_of_tickets" validate:"required,gt=0"`
	Rooms           []RoomHoldRequest `json:"rooms" validate:"dive"`
}

type ExtendHoldRequest struct {
	ExtraMinutes int `json:"extra_minutes" validate:"required,gt=0"`
}

type HotelBookingRequest struct {
	AccommodationID uuid.UUID `json:"accommodation_id" validate:"required"`
	CheckInDate     time.Time `json:"check_in_date" validate:"required"`
	CheckOutDate    time.Time `json:"check_out_date" validate:"required"`
}

type BookingRoomRequest struct {
	RoomID   uuid.UUID `json:"room_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"required,gt=0"`
}

type BookingAddOnRequest struct {
	AddOnID    uuid.UUID  `json:"add_on_id" validate:"required"`
	TimeSlotID *uuid.UUID `json:"time_slot_id,omitempty"`
	Quantity   int        `json:"quantity" validate:"required,gt=0"`
}

type CreateBookingRequest struct {
	UserID        string                `json:"user_id" validate:"required"`
	EventDateID   uuid.UUID             `json:"event_date_id" validate:"required"`
	PricingPlanID uuid.UUID             `json:"pricing_plan_id" validate:"required"`
	GroupSizeID   uuid.UUID             `json:"group_size_id" validate:"required"`
	HotelBooking  *HotelBookingRequest  `json:"hotel_booking,omitempty"`
	Rooms         []BookingRoomRequest  `json:"rooms" validate:"dive"`
	AddOns        []BookingAddOnRequest `json:"add_ons" validate:"dive"`
	TicketHoldID  *uuid.UUID            `json:"ticket_hold_id,omitempty"`
}

type RegisterPaymentRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Currency  string `json:"currency" validate:"required,len=3"`
}
