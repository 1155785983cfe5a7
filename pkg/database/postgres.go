package database

import (
	"log"

	"github.com/sunsetfest/booking-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Event{},
		&models.EventDate{},
		&models.PricingPlan{},
		&models.GroupSize{},
		&models.Accommodation{},
		&models.Room{},
		&models.HotelBooking{},
		&models.AddOn{},
		&models.AddOnTimeSlot{},
		&models.TicketHold{},
		&models.RoomHold{},
		&models.Booking{},
		&models.BookingRoom{},
		&models.BookingAddOn{},
		&models.Payment{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Partial unique index: at most one unresolved checkout session per booking
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_payment_pending
		ON payments (booking_id)
		WHERE status = 'pending'
	`)

	return db
}
