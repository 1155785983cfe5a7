package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment maps one opaque checkout session id to exactly one booking. The
// unique session index is what makes result application idempotent.
type Payment struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID uuid.UUID     `gorm:"type:uuid;not null;index" json:"booking_id"`
	SessionID string        `gorm:"not null;uniqueIndex" json:"session_id"`
	Amount    float64       `gorm:"not null" json:"amount"`
	Currency  string        `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	Status    PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	Booking *Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
