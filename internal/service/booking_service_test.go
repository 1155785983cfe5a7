package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/sunsetfest/booking-backend/internal/models"
	"gorm.io/gorm"
)

// bookingFixture wires a consistent catalog: one event date, one plan with a
// 2-person group size, one accommodation with a room, one add-on.
type bookingFixture struct {
	eventDate     *models.EventDate
	plan          *models.PricingPlan
	groupSize     *models.GroupSize
	accommodation *models.Accommodation
	room          *models.Room
	addOn         *models.AddOn
	slot          *models.AddOnTimeSlot

	catalog     *mockCatalogRepo
	inventory   *mockInventoryRepo
	holdRepo    *mockHoldRepo
	bookingRepo *mockBookingRepo
	publisher   *mockPublisher
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{}

	f.eventDate = &models.EventDate{ID: uuid.New(), City: "Cabo", Title: "Weekend One"}
	f.plan = &models.PricingPlan{
		ID:           uuid.New(),
		EventDateID:  f.eventDate.ID,
		Title:        "GA Weekend",
		Price:        100,
		TotalTickets: 10,
	}
	f.groupSize = &models.GroupSize{
		ID:              uuid.New(),
		PricingPlanID:   f.plan.ID,
		NumberOfPersons: 2,
		BasePrice:       20,
	}
	f.accommodation = &models.Accommodation{
		ID:           uuid.New(),
		Title:        "Sunset Resort",
		Price:        200,
		TotalTickets: 20,
	}
	f.room = &models.Room{
		ID:              uuid.New(),
		AccommodationID: f.accommodation.ID,
		Title:           "Ocean King",
		Price:           50,
		BedType:         models.BedKing,
		TotalRooms:      5,
	}
	f.addOn = &models.AddOn{
		ID:           uuid.New(),
		Title:        "Sunset Cruise",
		Price:        15,
		TotalTickets: 30,
		MinPersons:   1,
	}
	override := 25.0
	f.slot = &models.AddOnTimeSlot{
		ID:            uuid.New(),
		AddOnID:       f.addOn.ID,
		TotalCapacity: 10,
		PriceOverride: &override,
	}

	f.catalog = &mockCatalogRepo{
		findEventDateFn: func(ctx context.Context, id uuid.UUID) (*models.EventDate, error) {
			if id == f.eventDate.ID {
				return f.eventDate, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		findPricingPlanFn: func(ctx context.Context, id uuid.UUID) (*models.PricingPlan, error) {
			if id == f.plan.ID {
				return f.plan, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		findGroupSizeFn: func(ctx context.Context, id uuid.UUID) (*models.GroupSize, error) {
			if id == f.groupSize.ID {
				return f.groupSize, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		findAccommodationFn: func(ctx context.Context, id uuid.UUID) (*models.Accommodation, error) {
			if id == f.accommodation.ID {
				return f.accommodation, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		findRoomFn: func(ctx context.Context, id uuid.UUID) (*models.Room, error) {
			if id == f.room.ID {
				return f.room, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		findAddOnFn: func(ctx context.Context, id uuid.UUID) (*models.AddOn, error) {
			if id == f.addOn.ID {
				return f.addOn, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		findTimeSlotFn: func(ctx context.Context, id uuid.UUID) (*models.AddOnTimeSlot, error) {
			if id == f.slot.ID {
				return f.slot, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	f.inventory = &mockInventoryRepo{}
	f.holdRepo = &mockHoldRepo{}
	f.bookingRepo = &mockBookingRepo{}
	f.publisher = &mockPublisher{}
	return f
}

func (f *bookingFixture) service() BookingService {
	inventory := NewInventoryService(f.catalog, f.inventory, nil)
	return NewBookingService(fakeTxManager{}, f.catalog, f.holdRepo, f.bookingRepo, f.inventory, inventory, f.publisher)
}

func (f *bookingFixture) baseInput() CreateBookingInput {
	return CreateBookingInput{
		UserID:        "user-1",
		EventDateID:   f.eventDate.ID,
		PricingPlanID: f.plan.ID,
		GroupSizeID:   f.groupSize.ID,
	}
}

func TestCreateBooking_PriceComposition(t *testing.T) {
	f := newBookingFixture()
	svc := f.service()

	input := f.baseInput()
	input.Rooms = []BookingRoomInput{{RoomID: f.room.ID, Quantity: 1}}
	input.AddOns = []BookingAddOnInput{{AddOnID: f.addOn.ID, Quantity: 1}}

	booking, err := svc.CreateBooking(context.Background(), input)

	assert.NoError(t, err)
	// 100 plan + 20 group size + 50 room + 15 add-on
	assert.Equal(t, 185.00, booking.TotalPrice)
	assert.Equal(t, models.StatusConfirmed, booking.Status)
	assert.False(t, booking.IsPaid)
	assert.Len(t, booking.Rooms, 1)
	assert.Equal(t, 50.0, booking.Rooms[0].Price)
	assert.Len(t, booking.AddOns, 1)
	assert.Equal(t, 15.0, booking.AddOns[0].Price)
	assert.Contains(t, f.publisher.published, "booking.created")
}

func TestCreateBooking_SlotPriceOverrideWins(t *testing.T) {
	f := newBookingFixture()
	f.addOn.HasTimeSlots = true
	svc := f.service()

	input := f.baseInput()
	input.AddOns = []BookingAddOnInput{{AddOnID: f.addOn.ID, TimeSlotID: &f.slot.ID, Quantity: 2}}

	booking, err := svc.CreateBooking(context.Background(), input)

	assert.NoError(t, err)
	// 100 + 20 + 2x25 slot override, not the 15 base price
	assert.Equal(t, 170.00, booking.TotalPrice)
	assert.Equal(t, 25.0, booking.AddOns[0].Price)
	assert.Equal(t, f.slot.ID, *booking.AddOns[0].TimeSlotID)
}

func TestCreateBooking_PlanEventDateMismatch(t *testing.T) {
	f := newBookingFixture()
	f.plan.EventDateID = uuid.New() // belongs elsewhere
	svc := f.service()

	_, err := svc.CreateBooking(context.Background(), f.baseInput())

	assert.ErrorIs(t, err, ErrPlanEventDateMismatch)
}

func TestCreateBooking_GroupSizePlanMismatch(t *testing.T) {
	f := newBookingFixture()
	f.groupSize.PricingPlanID = uuid.New()
	svc := f.service()

	_, err := svc.CreateBooking(context.Background(), f.baseInput())

	assert.ErrorIs(t, err, ErrGroupSizePlanMismatch)
}

func TestCreateBooking_InsufficientPlanTickets(t *testing.T) {
	f := newBookingFixture()
	f.inventory.confirmedPlanFn = func(ctx context.Context, tx *gorm.DB, planID uuid.UUID) (int, error) {
		return 9, nil
	}
	svc := f.service()

	_, err := svc.CreateBooking(context.Background(), f.baseInput())

	var insufficient *InsufficientInventoryError
	assert.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "pricing plan", insufficient.Unit)
	assert.Equal(t, 2, insufficient.Requested)
	assert.Equal(t, 1, insufficient.Available)
}

func TestCreateBooking_ConsumesHold(t *testing.T) {
	f := newBookingFixture()
	holdID := uuid.New()
	hold := &models.TicketHold{
		ID:              holdID,
		UserID:          "user-1",
		PricingPlanID:   f.plan.ID,
		NumberOfTickets: 2,
		CreatedAt:       time.Now().Add(-time.Minute),
		ExpiresAt:       time.Now().Add(9 * time.Minute),
	}
	f.holdRepo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*models.TicketHold, error) {
		if id == holdID {
			return hold, nil
		}
		return nil, gorm.ErrRecordNotFound
	}

	var deleted bool
	f.holdRepo.deleteFn = func(ctx context.Context, tx *gorm.DB, h *models.TicketHold) error {
		deleted = h.ID == holdID
		return nil
	}

	// The plan is otherwise fully held; only excluding this hold makes room.
	f.inventory.heldPlanFn = func(ctx context.Context, tx *gorm.DB, planID uuid.UUID, asOf time.Time, excludeHold *uuid.UUID) (int, error) {
		if excludeHold != nil && *excludeHold == holdID {
			return 8, nil
		}
		return 10, nil
	}

	svc := f.service()
	input := f.baseInput()
	input.TicketHoldID = &holdID

	booking, err := svc.CreateBooking(context.Background(), input)

	assert.NoError(t, err)
	assert.True(t, deleted, "consumed hold must be deleted")
	assert.Equal(t, models.StatusConfirmed, booking.Status)
}

func TestCreateBooking_ExpiredHoldRejected(t *testing.T) {
	f := newBookingFixture()
	holdID := uuid.New()
	f.holdRepo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*models.TicketHold, error) {
		return &models.TicketHold{
			ID:              holdID,
			PricingPlanID:   f.plan.ID,
			NumberOfTickets: 2,
			ExpiresAt:       time.Now().Add(-time.Minute),
		}, nil
	}

	svc := f.service()
	input := f.baseInput()
	input.TicketHoldID = &holdID

	_, err := svc.CreateBooking(context.Background(), input)

	assert.ErrorIs(t, err, ErrHoldExpiredOrMismatched)
}

func TestCreateBooking_HoldForDifferentPlanRejected(t *testing.T) {
	f := newBookingFixture()
	holdID := uuid.New()
	f.holdRepo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*models.TicketHold, error) {
		return &models.TicketHold{
			ID:              holdID,
			PricingPlanID:   uuid.New(),
			NumberOfTickets: 2,
			ExpiresAt:       time.Now().Add(5 * time.Minute),
		}, nil
	}

	svc := f.service()
	input := f.baseInput()
	input.TicketHoldID = &holdID

	_, err := svc.CreateBooking(context.Background(), input)

	assert.ErrorIs(t, err, ErrHoldExpiredOrMismatched)
}

func TestCreateBooking_HoldTooSmallRejected(t *testing.T) {
	f := newBookingFixture()
	holdID := uuid.New()
	f.holdRepo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*models.TicketHold, error) {
		return &models.TicketHold{
			ID:              holdID,
			PricingPlanID:   f.plan.ID,
			NumberOfTickets: 1, // group needs 2
			ExpiresAt:       time.Now().Add(5 * time.Minute),
		}, nil
	}

	svc := f.service()
	input := f.baseInput()
	input.TicketHoldID = &holdID

	_, err := svc.CreateBooking(context.Background(), input)

	assert.ErrorIs(t, err, ErrHoldExpiredOrMismatched)
}

func TestCreateBooking_HotelDatesInvalid(t *testing.T) {
	f := newBookingFixture()
	svc := f.service()

	checkIn := time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC)
	input := f.baseInput()
	input.HotelBooking = &HotelBookingInput{
		AccommodationID: f.accommodation.ID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkIn, // zero nights
	}

	_, err := svc.CreateBooking(context.Background(), input)

	assert.ErrorIs(t, err, ErrHotelDatesInvalid)
}

func TestCreateBooking_HotelDatesUnavailable(t *testing.T) {
	f := newBookingFixture()
	f.inventory.overlapsFn = func(ctx context.Context, tx *gorm.DB, accommodationID uuid.UUID, checkIn, checkOut time.Time) (int64, error) {
		return 1, nil
	}
	svc := f.service()

	input := f.baseInput()
	input.HotelBooking = &HotelBookingInput{
		AccommodationID: f.accommodation.ID,
		CheckInDate:     time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC),
		CheckOutDate:    time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC),
	}

	_, err := svc.CreateBooking(context.Background(), input)

	assert.ErrorIs(t, err, ErrHotelDatesUnavailable)
}

func TestCreateBooking_HotelIncludedInPrice(t *testing.T) {
	f := newBookingFixture()
	svc := f.service()

	input := f.baseInput()
	input.HotelBooking = &HotelBookingInput{
		AccommodationID: f.accommodation.ID,
		CheckInDate:     time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC),
		CheckOutDate:    time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC),
	}
	input.Rooms = []BookingRoomInput{{RoomID: f.room.ID, Quantity: 2}}

	booking, err := svc.CreateBooking(context.Background(), input)

	assert.NoError(t, err)
	// 100 + 20 + 200 accommodation + 2x50 rooms
	assert.Equal(t, 420.00, booking.TotalPrice)
	assert.NotNil(t, booking.HotelBookingID)
}

func TestCreateBooking_RoomFromOtherAccommodationRejected(t *testing.T) {
	f := newBookingFixture()
	f.room.AccommodationID = uuid.New()
	svc := f.service()

	input := f.baseInput()
	input.HotelBooking = &HotelBookingInput{
		AccommodationID: f.accommodation.ID,
		CheckInDate:     time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC),
		CheckOutDate:    time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC),
	}
	input.Rooms = []BookingRoomInput{{RoomID: f.room.ID, Quantity: 1}}

	_, err := svc.CreateBooking(context.Background(), input)

	assert.ErrorIs(t, err, ErrRoomAccommodationMismatch)
}

func TestCreateBooking_DuplicateRoomLinesCheckedAsOne(t *testing.T) {
	f := newBookingFixture()
	// 5 total, 2 confirmed: 3 left.
	f.inventory.confirmedRoomFn = func(ctx context.Context, tx *gorm.DB, roomID uuid.UUID) (int, error) {
		return 2, nil
	}
	svc := f.service()

	input := f.baseInput()
	input.Rooms = []BookingRoomInput{
		{RoomID: f.room.ID, Quantity: 2},
		{RoomID: f.room.ID, Quantity: 2},
	}

	_, err := svc.CreateBooking(context.Background(), input)

	// Each line fits on its own; together they oversell and must be rejected.
	var insufficient *InsufficientInventoryError
	assert.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "room", insufficient.Unit)
	assert.Equal(t, 4, insufficient.Requested)
	assert.Equal(t, 3, insufficient.Available)
}

func TestCreateBooking_DuplicateRoomLinesMerged(t *testing.T) {
	f := newBookingFixture()
	svc := f.service()

	input := f.baseInput()
	input.Rooms = []BookingRoomInput{
		{RoomID: f.room.ID, Quantity: 1},
		{RoomID: f.room.ID, Quantity: 2},
	}

	booking, err := svc.CreateBooking(context.Background(), input)

	assert.NoError(t, err)
	assert.Len(t, booking.Rooms, 1)
	assert.Equal(t, 3, booking.Rooms[0].Quantity)
	// 100 + 20 + 3x50
	assert.Equal(t, 270.00, booking.TotalPrice)
}

func TestCreateBooking_DuplicateAddOnLinesCheckedAsOne(t *testing.T) {
	f := newBookingFixture()
	// 30 total, 27 confirmed: 3 left.
	f.inventory.confirmedAddFn = func(ctx context.Context, tx *gorm.DB, addOnID uuid.UUID) (int, error) {
		return 27, nil
	}
	svc := f.service()

	input := f.baseInput()
	input.AddOns = []BookingAddOnInput{
		{AddOnID: f.addOn.ID, Quantity: 2},
		{AddOnID: f.addOn.ID, Quantity: 2},
	}

	_, err := svc.CreateBooking(context.Background(), input)

	var insufficient *InsufficientInventoryError
	assert.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "add-on", insufficient.Unit)
	assert.Equal(t, 4, insufficient.Requested)
	assert.Equal(t, 3, insufficient.Available)
}

func TestCreateBooking_DuplicateTimeSlotLinesCheckedAsOne(t *testing.T) {
	f := newBookingFixture()
	f.addOn.HasTimeSlots = true
	// Slot holds 10, 8 confirmed: 2 left.
	f.inventory.confirmedSlotFn = func(ctx context.Context, tx *gorm.DB, slotID uuid.UUID) (int, error) {
		return 8, nil
	}
	svc := f.service()

	input := f.baseInput()
	input.AddOns = []BookingAddOnInput{
		{AddOnID: f.addOn.ID, TimeSlotID: &f.slot.ID, Quantity: 1},
		{AddOnID: f.addOn.ID, TimeSlotID: &f.slot.ID, Quantity: 2},
	}

	_, err := svc.CreateBooking(context.Background(), input)

	var insufficient *InsufficientInventoryError
	assert.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "time slot", insufficient.Unit)
	assert.Equal(t, 3, insufficient.Requested)
	assert.Equal(t, 2, insufficient.Available)
}

func TestCreateBooking_TimeSlotRequired(t *testing.T) {
	f := newBookingFixture()
	f.addOn.HasTimeSlots = true
	svc := f.service()

	input := f.baseInput()
	input.AddOns = []BookingAddOnInput{{AddOnID: f.addOn.ID, Quantity: 1}}

	_, err := svc.CreateBooking(context.Background(), input)

	assert.ErrorIs(t, err, ErrTimeSlotRequired)
}

func TestCreateBooking_AddOnBelowMinPersons(t *testing.T) {
	f := newBookingFixture()
	f.addOn.MinPersons = 4
	svc := f.service()

	input := f.baseInput()
	input.AddOns = []BookingAddOnInput{{AddOnID: f.addOn.ID, Quantity: 2}}

	_, err := svc.CreateBooking(context.Background(), input)

	assert.ErrorIs(t, err, ErrAddOnMinPersons)
}

func TestCreateBooking_NoWritesOnValidationFailure(t *testing.T) {
	f := newBookingFixture()
	f.groupSize.PricingPlanID = uuid.New()

	var wrote bool
	f.bookingRepo.createFn = func(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
		wrote = true
		return nil
	}

	svc := f.service()
	_, err := svc.CreateBooking(context.Background(), f.baseInput())

	assert.Error(t, err)
	assert.False(t, wrote)
	assert.Empty(t, f.publisher.published)
}

func TestCancelBooking_Success(t *testing.T) {
	f := newBookingFixture()
	bookingID := uuid.New()
	stored := &models.Booking{
		ID:            bookingID,
		UserID:        "user-1",
		PricingPlanID: f.plan.ID,
		Status:        models.StatusConfirmed,
		TotalPrice:    185,
	}
	f.bookingRepo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
		return stored, nil
	}

	var newStatus models.BookingStatus
	f.bookingRepo.updateStatusFn = func(ctx context.Context, tx *gorm.DB, id uuid.UUID, status models.BookingStatus) error {
		newStatus = status
		return nil
	}

	svc := f.service()
	booking, err := svc.CancelBooking(context.Background(), bookingID)

	assert.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, newStatus)
	assert.Equal(t, models.StatusCancelled, booking.Status)
	assert.Contains(t, f.publisher.published, "booking.cancelled")
}

func TestCancelBooking_AlreadyCancelled(t *testing.T) {
	f := newBookingFixture()
	f.bookingRepo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
		return &models.Booking{ID: id, Status: models.StatusCancelled}, nil
	}

	svc := f.service()
	_, err := svc.CancelBooking(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrBookingAlreadyCancelled)
}

func TestCancelBooking_NotFound(t *testing.T) {
	f := newBookingFixture()
	f.bookingRepo.findByIDFn = func(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := f.service()
	_, err := svc.CancelBooking(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRoundCents(t *testing.T) {
	assert.Equal(t, 185.00, roundCents(184.999999999))
	assert.Equal(t, 10.55, roundCents(10.554))
	assert.Equal(t, 10.56, roundCents(10.556))
}
