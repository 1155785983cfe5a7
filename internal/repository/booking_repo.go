package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sunsetfest/booking-backend/internal/models"
	"gorm.io/gorm"
)

type BookingRepository interface {
	// Create persists the booking with its line items in one go.
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	CreateHotelBooking(ctx context.Context, tx *gorm.DB, hotel *models.HotelBooking) error
	// FindByID loads the full snapshot: plan, group size, hotel booking and
	// line items with their referenced units.
	FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	FindByUser(ctx context.Context, userID string) ([]models.Booking, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Booking, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status models.BookingStatus) error
	// SetPaid flips the payment-driven fields in one update.
	SetPaid(ctx context.Context, tx *gorm.DB, id uuid.UUID, status models.BookingStatus, isPaid bool) error
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return conn(r.db, tx).WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) CreateHotelBooking(ctx context.Context, tx *gorm.DB, hotel *models.HotelBooking) error {
	return conn(r.db, tx).WithContext(ctx).Create(hotel).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("EventDate").
		Preload("PricingPlan").
		Preload("GroupSize").
		Preload("HotelBooking").
		Preload("HotelBooking.Accommodation").
		Preload("Rooms").
		Preload("Rooms.Room").
		Preload("AddOns").
		Preload("AddOns.AddOn").
		Preload("AddOns.TimeSlot").
		First(&booking, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("PricingPlan").
		Preload("GroupSize").
		Preload("Rooms").
		Preload("AddOns").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := tx.WithContext(ctx).
		Raw("SELECT * FROM bookings WHERE id = ? FOR UPDATE", id).
		Scan(&booking).Error
	if err != nil {
		return nil, err
	}
	if booking.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &booking, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status models.BookingStatus) error {
	return conn(r.db, tx).WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *bookingRepository) SetPaid(ctx context.Context, tx *gorm.DB, id uuid.UUID, status models.BookingStatus, isPaid bool) error {
	return conn(r.db, tx).WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "is_paid": isPaid}).Error
}
