package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sunsetfest/booking-backend/internal/models"
	"gorm.io/gorm"
)

// --- Fake TxManager ---

// fakeTxManager runs the callback with a nil tx; the mock repositories ignore
// the handle anyway.
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

// --- Mock CatalogRepository ---

type mockCatalogRepo struct {
	findEventDateFn     func(ctx context.Context, id uuid.UUID) (*models.EventDate, error)
	findPricingPlanFn   func(ctx context.Context, id uuid.UUID) (*models.PricingPlan, error)
	findGroupSizeFn     func(ctx context.Context, id uuid.UUID) (*models.GroupSize, error)
	findAccommodationFn func(ctx context.Context, id uuid.UUID) (*models.Accommodation, error)
	findRoomFn          func(ctx context.Context, id uuid.UUID) (*models.Room, error)
	findAddOnFn         func(ctx context.Context, id uuid.UUID) (*models.AddOn, error)
	findTimeSlotFn      func(ctx context.Context, id uuid.UUID) (*models.AddOnTimeSlot, error)
}

func (m *mockCatalogRepo) FindEventDate(ctx context.Context, id uuid.UUID) (*models.EventDate, error) {
	return m.findEventDateFn(ctx, id)
}
func (m *mockCatalogRepo) FindPricingPlan(ctx context.Context, id uuid.UUID) (*models.PricingPlan, error) {
	return m.findPricingPlanFn(ctx, id)
}
func (m *mockCatalogRepo) FindPricingPlanForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.PricingPlan, error) {
	return m.findPricingPlanFn(ctx, id)
}
func (m *mockCatalogRepo) FindGroupSize(ctx context.Context, id uuid.UUID) (*models.GroupSize, error) {
	return m.findGroupSizeFn(ctx, id)
}
func (m *mockCatalogRepo) FindAccommodation(ctx context.Context, id uuid.UUID) (*models.Accommodation, error) {
	return m.findAccommodationFn(ctx, id)
}
func (m *mockCatalogRepo) FindAccommodationForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Accommodation, error) {
	return m.findAccommodationFn(ctx, id)
}
func (m *mockCatalogRepo) FindRoom(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	return m.findRoomFn(ctx, id)
}
func (m *mockCatalogRepo) FindRoomForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Room, error) {
	return m.findRoomFn(ctx, id)
}
func (m *mockCatalogRepo) FindAddOn(ctx context.Context, id uuid.UUID) (*models.AddOn, error) {
	return m.findAddOnFn(ctx, id)
}
func (m *mockCatalogRepo) FindAddOnForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.AddOn, error) {
	return m.findAddOnFn(ctx, id)
}
func (m *mockCatalogRepo) FindTimeSlot(ctx context.Context, id uuid.UUID) (*models.AddOnTimeSlot, error) {
	return m.findTimeSlotFn(ctx, id)
}
func (m *mockCatalogRepo) FindTimeSlotForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.AddOnTimeSlot, error) {
	return m.findTimeSlotFn(ctx, id)
}

// --- Mock InventoryRepository ---

type mockInventoryRepo struct {
	confirmedPlanFn func(ctx context.Context, tx *gorm.DB, planID uuid.UUID) (int, error)
	heldPlanFn      func(ctx context.Context, tx *gorm.DB, planID uuid.UUID, asOf time.Time, excludeHold *uuid.UUID) (int, error)
	confirmedRoomFn func(ctx context.Context, tx *gorm.DB, roomID uuid.UUID) (int, error)
	heldRoomFn      func(ctx context.Context, tx *gorm.DB, roomID uuid.UUID, asOf time.Time, excludeHold *uuid.UUID) (int, error)
	confirmedAccFn  func(ctx context.Context, tx *gorm.DB, accommodationID uuid.UUID) (int, error)
	confirmedAddFn  func(ctx context.Context, tx *gorm.DB, addOnID uuid.UUID) (int, error)
	confirmedSlotFn func(ctx context.Context, tx *gorm.DB, slotID uuid.UUID) (int, error)
	overlapsFn      func(ctx context.Context, tx *gorm.DB, accommodationID uuid.UUID, checkIn, checkOut time.Time) (int64, error)
}

func (m *mockInventoryRepo) ConfirmedPlanPersons(ctx context.Context, tx *gorm.DB, planID uuid.UUID) (int, error) {
	if m.confirmedPlanFn != nil {
		return m.confirmedPlanFn(ctx, tx, planID)
	}
	return 0, nil
}
func (m *mockInventoryRepo) ActivePlanHoldTickets(ctx context.Context, tx *gorm.DB, planID uuid.UUID, asOf time.Time, excludeHold *uuid.UUID) (int, error) {
	if m.heldPlanFn != nil {
		return m.heldPlanFn(ctx, tx, planID, asOf, excludeHold)
	}
	return 0, nil
}
func (m *mockInventoryRepo) ConfirmedRoomQuantity(ctx context.Context, tx *gorm.DB, roomID uuid.UUID) (int, error) {
	if m.confirmedRoomFn != nil {
		return m.confirmedRoomFn(ctx, tx, roomID)
	}
	return 0, nil
}
func (m *mockInventoryRepo) ActiveRoomHoldQuantity(ctx context.Context, tx *gorm.DB, roomID uuid.UUID, asOf time.Time, excludeHold *uuid.UUID) (int, error) {
	if m.heldRoomFn != nil {
		return m.heldRoomFn(ctx, tx, roomID, asOf, excludeHold)
	}
	return 0, nil
}
func (m *mockInventoryRepo) ConfirmedAccommodationPersons(ctx context.Context, tx *gorm.DB, accommodationID uuid.UUID) (int, error) {
	if m.confirmedAccFn != nil {
		return m.confirmedAccFn(ctx, tx, accommodationID)
	}
	return 0, nil
}
func (m *mockInventoryRepo) ConfirmedAddOnQuantity(ctx context.Context, tx *gorm.DB, addOnID uuid.UUID) (int, error) {
	if m.confirmedAddFn != nil {
		return m.confirmedAddFn(ctx, tx, addOnID)
	}
	return 0, nil
}
func (m *mockInventoryRepo) ConfirmedTimeSlotQuantity(ctx context.Context, tx *gorm.DB, slotID uuid.UUID) (int, error) {
	if m.confirmedSlotFn != nil {
		return m.confirmedSlotFn(ctx, tx, slotID)
	}
	return 0, nil
}
func (m *mockInventoryRepo) CountOverlappingHotelBookings(ctx context.Context, tx *gorm.DB, accommodationID uuid.UUID, checkIn, checkOut time.Time) (int64, error) {
	if m.overlapsFn != nil {
		return m.overlapsFn(ctx, tx, accommodationID, checkIn, checkOut)
	}
	return 0, nil
}

// --- Mock HoldRepository ---

type mockHoldRepo struct {
	createFn        func(ctx context.Context, tx *gorm.DB, hold *models.TicketHold) error
	findByIDFn      func(ctx context.Context, id uuid.UUID) (*models.TicketHold, error)
	extendFn        func(ctx context.Context, tx *gorm.DB, hold *models.TicketHold, expiresAt time.Time) error
	deleteFn        func(ctx context.Context, tx *gorm.DB, hold *models.TicketHold) error
	deleteExpiredFn func(ctx context.Context, before time.Time) (int64, error)
}

func (m *mockHoldRepo) Create(ctx context.Context, tx *gorm.DB, hold *models.TicketHold) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, hold)
	}
	hold.ID = uuid.New()
	return nil
}
func (m *mockHoldRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.TicketHold, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockHoldRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.TicketHold, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockHoldRepo) Extend(ctx context.Context, tx *gorm.DB, hold *models.TicketHold, expiresAt time.Time) error {
	if m.extendFn != nil {
		return m.extendFn(ctx, tx, hold, expiresAt)
	}
	return nil
}
func (m *mockHoldRepo) Delete(ctx context.Context, tx *gorm.DB, hold *models.TicketHold) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, tx, hold)
	}
	return nil
}
func (m *mockHoldRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx, before)
	}
	return 0, nil
}

// --- Mock BookingRepository ---

type mockBookingRepo struct {
	createFn       func(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	createHotelFn  func(ctx context.Context, tx *gorm.DB, hotel *models.HotelBooking) error
	findByIDFn     func(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	findByUserFn   func(ctx context.Context, userID string) ([]models.Booking, error)
	updateStatusFn func(ctx context.Context, tx *gorm.DB, id uuid.UUID, status models.BookingStatus) error
	setPaidFn      func(ctx context.Context, tx *gorm.DB, id uuid.UUID, status models.BookingStatus, isPaid bool) error
}

func (m *mockBookingRepo) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, booking)
	}
	booking.ID = uuid.New()
	return nil
}
func (m *mockBookingRepo) CreateHotelBooking(ctx context.Context, tx *gorm.DB, hotel *models.HotelBooking) error {
	if m.createHotelFn != nil {
		return m.createHotelFn(ctx, tx, hotel)
	}
	hotel.ID = uuid.New()
	return nil
}
func (m *mockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockBookingRepo) FindByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return m.findByUserFn(ctx, userID)
}
func (m *mockBookingRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Booking, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockBookingRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status models.BookingStatus) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, tx, id, status)
	}
	return nil
}
func (m *mockBookingRepo) SetPaid(ctx context.Context, tx *gorm.DB, id uuid.UUID, status models.BookingStatus, isPaid bool) error {
	if m.setPaidFn != nil {
		return m.setPaidFn(ctx, tx, id, status, isPaid)
	}
	return nil
}

// --- Mock PaymentRepository ---

type mockPaymentRepo struct {
	createFn        func(ctx context.Context, tx *gorm.DB, payment *models.Payment) error
	findBySessionFn func(ctx context.Context, sessionID string) (*models.Payment, error)
	updateStatusFn  func(ctx context.Context, tx *gorm.DB, id uuid.UUID, status models.PaymentStatus) error
}

func (m *mockPaymentRepo) Create(ctx context.Context, tx *gorm.DB, payment *models.Payment) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, payment)
	}
	payment.ID = uuid.New()
	return nil
}
func (m *mockPaymentRepo) FindBySessionID(ctx context.Context, sessionID string) (*models.Payment, error) {
	return m.findBySessionFn(ctx, sessionID)
}
func (m *mockPaymentRepo) FindBySessionIDForUpdate(ctx context.Context, tx *gorm.DB, sessionID string) (*models.Payment, error) {
	return m.findBySessionFn(ctx, sessionID)
}
func (m *mockPaymentRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status models.PaymentStatus) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, tx, id, status)
	}
	return nil
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	published []string
}

func (m *mockPublisher) Publish(routingKey string, payload any) error {
	m.published = append(m.published, routingKey)
	return nil
}
