package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sunsetfest/booking-backend/internal/models"
	"gorm.io/gorm"
)

// InventoryRepository aggregates confirmed consumption and active held
// quantities per sellable unit. All methods accept an optional in-flight
// transaction so the booking/hold paths read inside their row locks; read-only
// callers pass nil.
//
// excludeHold, where present, leaves one ticket hold (and its linked room
// holds) out of the held sums: a booking that consumes a hold must not be
// blocked by that same hold's reservation.
type InventoryRepository interface {
	ConfirmedPlanPersons(ctx context.Context, tx *gorm.DB, planID uuid.UUID) (int, error)
	ActivePlanHoldTickets(ctx context.Context, tx *gorm.DB, planID uuid.UUID, asOf time.Time, excludeHold *uuid.UUID) (int, error)
	ConfirmedRoomQuantity(ctx context.Context, tx *gorm.DB, roomID uuid.UUID) (int, error)
	ActiveRoomHoldQuantity(ctx context.Context, tx *gorm.DB, roomID uuid.UUID, asOf time.Time, excludeHold *uuid.UUID) (int, error)
	ConfirmedAccommodationPersons(ctx context.Context, tx *gorm.DB, accommodationID uuid.UUID) (int, error)
	ConfirmedAddOnQuantity(ctx context.Context, tx *gorm.DB, addOnID uuid.UUID) (int, error)
	ConfirmedTimeSlotQuantity(ctx context.Context, tx *gorm.DB, slotID uuid.UUID) (int, error)
	CountOverlappingHotelBookings(ctx context.Context, tx *gorm.DB, accommodationID uuid.UUID, checkIn, checkOut time.Time) (int64, error)
}

type inventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) ConfirmedPlanPersons(ctx context.Context, tx *gorm.DB, planID uuid.UUID) (int, error) {
	var total int
	err := conn(r.db, tx).WithContext(ctx).
		Model(&models.Booking{}).
		Select("COALESCE(SUM(group_sizes.number_of_persons), 0)").
		Joins("JOIN group_sizes ON group_sizes.id = bookings.group_size_id").
		Where("bookings.pricing_plan_id = ? AND bookings.status = ?", planID, models.StatusConfirmed).
		Scan(&total).Error
	return total, err
}

func (r *inventoryRepository) ActivePlanHoldTickets(ctx context.Context, tx *gorm.DB, planID uuid.UUID, asOf time.Time, excludeHold *uuid.UUID) (int, error) {
	var total int
	q := conn(r.db, tx).WithContext(ctx).
		Model(&models.TicketHold{}).
		Select("COALESCE(SUM(number_of_tickets), 0)").
		Where("pricing_plan_id = ? AND expires_at > ?", planID, asOf)
	if excludeHold != nil {
		q = q.Where("id <> ?", *excludeHold)
	}
	err := q.Scan(&total).Error
	return total, err
}

func (r *inventoryRepository) ConfirmedRoomQuantity(ctx context.Context, tx *gorm.DB, roomID uuid.UUID) (int, error) {
	var total int
	err := conn(r.db, tx).WithContext(ctx).
		Model(&models.BookingRoom{}).
		Select("COALESCE(SUM(booking_rooms.quantity), 0)").
		Joins("JOIN bookings ON bookings.id = booking_rooms.booking_id").
		Where("booking_rooms.room_id = ? AND bookings.status = ?", roomID, models.StatusConfirmed).
		Scan(&total).Error
	return total, err
}

func (r *inventoryRepository) ActiveRoomHoldQuantity(ctx context.Context, tx *gorm.DB, roomID uuid.UUID, asOf time.Time, excludeHold *uuid.UUID) (int, error) {
	var total int
	q := conn(r.db, tx).WithContext(ctx).
		Model(&models.RoomHold{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("room_id = ? AND expires_at > ?", roomID, asOf)
	if excludeHold != nil {
		q = q.Where(
			"id NOT IN (SELECT room_hold_id FROM ticket_hold_room_holds WHERE ticket_hold_id = ?)",
			*excludeHold,
		)
	}
	err := q.Scan(&total).Error
	return total, err
}

func (r *inventoryRepository) ConfirmedAccommodationPersons(ctx context.Context, tx *gorm.DB, accommodationID uuid.UUID) (int, error) {
	var total int
	err := conn(r.db, tx).WithContext(ctx).
		Model(&models.Booking{}).
		Select("COALESCE(SUM(group_sizes.number_of_persons), 0)").
		Joins("JOIN group_sizes ON group_sizes.id = bookings.group_size_id").
		Joins("JOIN hotel_bookings ON hotel_bookings.id = bookings.hotel_booking_id").
		Where("hotel_bookings.accommodation_id = ? AND bookings.status = ?", accommodationID, models.StatusConfirmed).
		Scan(&total).Error
	return total, err
}

func (r *inventoryRepository) ConfirmedAddOnQuantity(ctx context.Context, tx *gorm.DB, addOnID uuid.UUID) (int, error) {
	var total int
	err := conn(r.db, tx).WithContext(ctx).
		Model(&models.BookingAddOn{}).
		Select("COALESCE(SUM(booking_add_ons.quantity), 0)").
		Joins("JOIN bookings ON bookings.id = booking_add_ons.booking_id").
		Where("booking_add_ons.add_on_id = ? AND bookings.status = ?", addOnID, models.StatusConfirmed).
		Scan(&total).Error
	return total, err
}

func (r *inventoryRepository) ConfirmedTimeSlotQuantity(ctx context.Context, tx *gorm.DB, slotID uuid.UUID) (int, error) {
	var total int
	err := conn(r.db, tx).WithContext(ctx).
		Model(&models.BookingAddOn{}).
		Select("COALESCE(SUM(booking_add_ons.quantity), 0)").
		Joins("JOIN bookings ON bookings.id = booking_add_ons.booking_id").
		Where("booking_add_ons.time_slot_id = ? AND bookings.status = ?", slotID, models.StatusConfirmed).
		Scan(&total).Error
	return total, err
}

func (r *inventoryRepository) CountOverlappingHotelBookings(ctx context.Context, tx *gorm.DB, accommodationID uuid.UUID, checkIn, checkOut time.Time) (int64, error) {
	var count int64
	err := conn(r.db, tx).WithContext(ctx).
		Model(&models.HotelBooking{}).
		Where("accommodation_id = ? AND check_in_date < ? AND check_out_date > ?", accommodationID, checkOut, checkIn).
		Count(&count).Error
	return count, err
}
