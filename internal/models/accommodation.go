package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Accommodation struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `json:"description"`
	Rating       float64   `json:"rating"`
	Price        float64   `gorm:"not null" json:"price"`
	TotalTickets int       `gorm:"not null;default:0" json:"total_tickets"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Rooms []Room `gorm:"foreignKey:AccommodationID" json:"rooms,omitempty"`
}

func (a *Accommodation) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type BedType string

const (
	BedSingle BedType = "single"
	BedDouble BedType = "double"
	BedQueen  BedType = "queen"
	BedKing   BedType = "king"
)

// Capacity is how many guests one room of this bed type sleeps.
func (b BedType) Capacity() int {
	switch b {
	case BedDouble, BedQueen, BedKing:
		return 2
	default:
		return 1
	}
}

// Room capacity is counted in rooms, not guests: TotalRooms is the number of
// physical rooms of this type, each sleeping BedType.Capacity() guests.
type Room struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AccommodationID uuid.UUID `gorm:"type:uuid;not null;index" json:"accommodation_id"`
	Title           string    `gorm:"not null" json:"title"`
	Description     string    `json:"description"`
	Price           float64   `gorm:"not null" json:"price"`
	BedType         BedType   `gorm:"type:varchar(20);not null;default:'single'" json:"bed_type"`
	TotalRooms      int       `gorm:"not null;default:0" json:"total_rooms"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Accommodation *Accommodation `gorm:"foreignKey:AccommodationID" json:"accommodation,omitempty"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// HotelBooking pins an accommodation to a date range. Ranges for the same
// accommodation must not overlap.
type HotelBooking struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AccommodationID uuid.UUID `gorm:"type:uuid;not null;index:idx_hotel_booking_range" json:"accommodation_id"`
	CheckInDate     time.Time `gorm:"not null;index:idx_hotel_booking_range" json:"check_in_date"`
	CheckOutDate    time.Time `gorm:"not null;index:idx_hotel_booking_range" json:"check_out_date"`
	CreatedAt       time.Time `json:"created_at"`

	Accommodation *Accommodation `gorm:"foreignKey:AccommodationID" json:"accommodation,omitempty"`
}

func (h *HotelBooking) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
