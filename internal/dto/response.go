package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/sunsetfest/booking-backend/internal/models"
)

type RoomHoldResponse struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"room_id"`
	Quantity  int       `json:"quantity"`
	ExpiresAt time.Time `json:"expires_at"`
}

type HoldResponse struct {
	ID              uuid.UUID          `json:"id"`
	UserID          string             `json:"user_id"`
	PricingPlanID   uuid.UUID          `json:"pricing_plan_id"`
	NumberOfTickets int                `json:"number_of_tickets"`
	CreatedAt       time.Time          `json:"created_at"`
	ExpiresAt       time.Time          `json:"expires_at"`
	RoomHolds       []RoomHoldResponse `json:"room_holds,omitempty"`
}

type HotelBookingResponse struct {
	ID              uuid.UUID `json:"id"`
	AccommodationID uuid.UUID `json:"accommodation_id"`
	CheckInDate     time.Time `json:"check_in_date"`
	CheckOutDate    time.Time `json:"check_out_date"`
}

type BookingRoomResponse struct {
	RoomID   uuid.UUID `json:"room_id"`
	Quantity int       `json:"quantity"`
	Price    float64   `json:"price"`
}

type BookingAddOnResponse struct {
	AddOnID    uuid.UUID  `json:"add_on_id"`
	TimeSlotID *uuid.UUID `json:"time_slot_id,omitempty"`
	Quantity   int        `json:"quantity"`
	Price      float64    `json:"price"`
}

type BookingResponse struct {
	ID            uuid.UUID              `json:"id"`
	UserID        string                 `json:"user_id"`
	EventDateID   uuid.UUID              `json:"event_date_id"`
	PricingPlanID uuid.UUID              `json:"pricing_plan_id"`
	GroupSizeID   uuid.UUID              `json:"group_size_id"`
	Status        models.BookingStatus   `json:"status"`
	TotalPrice    float64                `json:"total_price"`
	IsPaid        bool                   `json:"is_paid"`
	HotelBooking  *HotelBookingResponse  `json:"hotel_booking,omitempty"`
	Rooms         []BookingRoomResponse  `json:"rooms,omitempty"`
	AddOns        []BookingAddOnResponse `json:"add_ons,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

type PaymentResponse struct {
	ID        uuid.UUID            `json:"id"`
	BookingID uuid.UUID            `json:"booking_id"`
	SessionID string               `json:"session_id"`
	Amount    float64              `json:"amount"`
	Currency  string               `json:"currency"`
	Status    models.PaymentStatus `json:"status"`
}

type AvailabilityResponse struct {
	Kind      string    `json:"kind"`
	ID        uuid.UUID `json:"id"`
	Available int       `json:"available"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToHoldResponse(h *models.TicketHold) HoldResponse {
	rooms := make([]RoomHoldResponse, len(h.RoomHolds))
	for i, rh := range h.RoomHolds {
		rooms[i] = RoomHoldResponse{
			ID:        rh.ID,
			RoomID:    rh.RoomID,
			Quantity:  rh.Quantity,
			ExpiresAt: rh.ExpiresAt,
		}
	}
	return HoldResponse{
		ID:              h.ID,
		UserID:          h.UserID,
		PricingPlanID:   h.PricingPlanID,
		NumberOfTickets: h.NumberOfTickets,
		CreatedAt:       h.CreatedAt,
		ExpiresAt:       h.ExpiresAt,
		RoomHolds:       rooms,
	}
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	resp := BookingResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		EventDateID:   b.EventDateID,
		PricingPlanID: b.PricingPlanID,
		GroupSizeID:   b.GroupSizeID,
		Status:        b.Status,
		TotalPrice:    b.TotalPrice,
		IsPaid:        b.IsPaid,
		CreatedAt:     b.CreatedAt,
	}
	if b.HotelBooking != nil {
		resp.HotelBooking = &HotelBookingResponse{
			ID:              b.HotelBooking.ID,
			AccommodationID: b.HotelBooking.AccommodationID,
			CheckInDate:     b.HotelBooking.CheckInDate,
			CheckOutDate:    b.HotelBooking.CheckOutDate,
		}
	}
	for _, item := range b.Rooms {
		resp.Rooms = append(resp.Rooms, BookingRoomResponse{
			RoomID:   item.RoomID,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	for _, item := range b.AddOns {
		resp.AddOns = append(resp.AddOns, BookingAddOnResponse{
			AddOnID:    item.AddOnID,
			TimeSlotID: item.TimeSlotID,
			Quantity:   item.Quantity,
			Price:      item.Price,
		})
	}
	return resp
}

func ToPaymentResponse(p *models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		BookingID: p.BookingID,
		SessionID: p.SessionID,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Status:    p.Status,
	}
}
