package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sunsetfest/booking-backend/internal/models"
	"github.com/sunsetfest/booking-backend/internal/repository"
	"gorm.io/gorm"
)

type HotelBookingInput struct {
	AccommodationID uuid.UUID
	CheckInDate     time.Time
	CheckOutDate    time.Time
}

type BookingRoomInput struct {
	RoomID   uuid.UUID
	Quantity int
}

type BookingAddOnInput struct {
	AddOnID    uuid.UUID
	TimeSlotID *uuid.UUID
	Quantity   int
}

type CreateBookingInput struct {
	UserID        string
	EventDateID   uuid.UUID
	PricingPlanID uuid.UUID
	GroupSizeID   uuid.UUID
	HotelBooking  *HotelBookingInput
	Rooms         []BookingRoomInput
	AddOns        []BookingAddOnInput
	TicketHoldID  *uuid.UUID
}

type BookingService interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error)
	CancelBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	ListBookings(ctx context.Context, userID string) ([]models.Booking, error)
}

type bookingService struct {
	txm           repository.TxManager
	catalogRepo   repository.CatalogRepository
	holdRepo      repository.HoldRepository
	bookingRepo   repository.BookingRepository
	inventoryRepo repository.InventoryRepository
	inventory     InventoryService
	publisher     EventPublisher
}

func NewBookingService(
	txm repository.TxManager,
	catalogRepo repository.CatalogRepository,
	holdRepo repository.HoldRepository,
	bookingRepo repository.BookingRepository,
	inventoryRepo repository.InventoryRepository,
	inventory InventoryService,
	publisher EventPublisher,
) BookingService {
	return &bookingService{
		txm:           txm,
		catalogRepo:   catalogRepo,
		holdRepo:      holdRepo,
		bookingRepo:   bookingRepo,
		inventoryRepo: inventoryRepo,
		inventory:     inventory,
		publisher:     publisher,
	}
}

// roundCents keeps money arithmetic honest at the points totals are produced.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// mergeRoomInputs folds duplicate room lines into one, so availability is
// checked against the summed quantity rather than each line in isolation.
// First-appearance order is preserved.
func mergeRoomInputs(in []BookingRoomInput) []BookingRoomInput {
	if len(in) < 2 {
		return in
	}
	out := make([]BookingRoomInput, 0, len(in))
	index := make(map[uuid.UUID]int, len(in))
	for _, req := range in {
		if i, ok := index[req.RoomID]; ok {
			out[i].Quantity += req.Quantity
			continue
		}
		index[req.RoomID] = len(out)
		out = append(out, req)
	}
	return out
}

// mergeAddOnInputs folds duplicate add-on lines keyed by add-on and time slot.
// Lines for the same add-on but different slots stay separate; each slot
// carries its own capacity.
func mergeAddOnInputs(in []BookingAddOnInput) []BookingAddOnInput {
	if len(in) < 2 {
		return in
	}
	type key struct {
		addOn uuid.UUID
		slot  uuid.UUID
	}
	out := make([]BookingAddOnInput, 0, len(in))
	index := make(map[key]int, len(in))
	for _, req := range in {
		k := key{addOn: req.AddOnID}
		if req.TimeSlotID != nil {
			k.slot = *req.TimeSlotID
		}
		if i, ok := index[k]; ok {
			out[i].Quantity += req.Quantity
			continue
		}
		index[k] = len(out)
		out = append(out, req)
	}
	return out
}

// CreateBooking runs the whole validation sequence and the writes inside one
// transaction. Capacity rows are locked before their availability is
// re-checked, so a concurrent booking against the same units serializes
// instead of overselling. No write happens until every check has passed.
func (s *bookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	var booking *models.Booking

	err := s.txm.Do(ctx, func(tx *gorm.DB) error {
		now := time.Now()

		eventDate, err := s.catalogRepo.FindEventDate(ctx, input.EventDateID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventDateNotFound
			}
			return err
		}

		plan, err := s.catalogRepo.FindPricingPlanForUpdate(ctx, tx, input.PricingPlanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPricingPlanNotFound
			}
			return err
		}
		if plan.EventDateID != eventDate.ID {
			return ErrPlanEventDateMismatch
		}

		groupSize, err := s.catalogRepo.FindGroupSize(ctx, input.GroupSizeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGroupSizeNotFound
			}
			return err
		}
		if groupSize.PricingPlanID != plan.ID {
			return ErrGroupSizePlanMismatch
		}
		persons := groupSize.NumberOfPersons

		// A supplied hold must cover this booking exactly: same plan, enough
		// tickets, not expired. Its own reservations are excluded from the
		// availability re-checks below so the hold cannot block itself.
		var hold *models.TicketHold
		var excludeHold *uuid.UUID
		if input.TicketHoldID != nil {
			hold, err = s.holdRepo.FindByIDForUpdate(ctx, tx, *input.TicketHoldID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrHoldExpiredOrMismatched
				}
				return err
			}
			if hold.PricingPlanID != plan.ID ||
				hold.NumberOfTickets < persons ||
				!hold.Active(now) {
				return ErrHoldExpiredOrMismatched
			}
			excludeHold = &hold.ID
		}

		planAvail, err := s.inventory.PlanAvailability(ctx, tx, plan, now, excludeHold)
		if err != nil {
			return err
		}
		if planAvail < persons {
			return &InsufficientInventoryError{
				Unit:      "pricing plan",
				Title:     plan.Title,
				Requested: persons,
				Available: planAvail,
			}
		}

		total := plan.Price + groupSize.BasePrice

		var acc *models.Accommodation
		var hotel *models.HotelBooking
		if input.HotelBooking != nil {
			hb := input.HotelBooking
			if !hb.CheckOutDate.After(hb.CheckInDate) {
				return ErrHotelDatesInvalid
			}
			acc, err = s.catalogRepo.FindAccommodationForUpdate(ctx, tx, hb.AccommodationID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrAccommodationNotFound
				}
				return err
			}
			overlaps, err := s.inventoryRepo.CountOverlappingHotelBookings(
				ctx, tx, acc.ID, hb.CheckInDate, hb.CheckOutDate)
			if err != nil {
				return err
			}
			if overlaps > 0 {
				return ErrHotelDatesUnavailable
			}
			accAvail, err := s.inventory.AccommodationAvailability(ctx, tx, acc)
			if err != nil {
				return err
			}
			if accAvail < persons {
				return &InsufficientInventoryError{
					Unit:      "accommodation",
					Title:     acc.Title,
					Requested: persons,
					Available: accAvail,
				}
			}
			hotel = &models.HotelBooking{
				AccommodationID: acc.ID,
				CheckInDate:     hb.CheckInDate,
				CheckOutDate:    hb.CheckOutDate,
			}
			total += acc.Price
		}

		roomReqs := mergeRoomInputs(input.Rooms)
		roomItems := make([]models.BookingRoom, 0, len(roomReqs))
		for _, req := range roomReqs {
			room, err := s.catalogRepo.FindRoomForUpdate(ctx, tx, req.RoomID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrRoomNotFound
				}
				return err
			}
			if acc != nil && room.AccommodationID != acc.ID {
				return ErrRoomAccommodationMismatch
			}
			roomAvail, err := s.inventory.RoomAvailability(ctx, tx, room, now, excludeHold)
			if err != nil {
				return err
			}
			if roomAvail < req.Quantity {
				return &InsufficientInventoryError{
					Unit:      "room",
					Title:     room.Title,
					Requested: req.Quantity,
					Available: roomAvail,
				}
			}
			roomItems = append(roomItems, models.BookingRoom{
				RoomID:   room.ID,
				Quantity: req.Quantity,
				Price:    room.Price,
			})
			total += room.Price * float64(req.Quantity)
		}

		addOnReqs := mergeAddOnInputs(input.AddOns)
		addOnItems := make([]models.BookingAddOn, 0, len(addOnReqs))
		for _, req := range addOnReqs {
			addOn, err := s.catalogRepo.FindAddOnForUpdate(ctx, tx, req.AddOnID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrAddOnNotFound
				}
				return err
			}
			if req.Quantity < addOn.MinPersons {
				return ErrAddOnMinPersons
			}

			unitPrice := addOn.Price
			var slotID *uuid.UUID
			if addOn.HasTimeSlots {
				if req.TimeSlotID == nil {
					return ErrTimeSlotRequired
				}
				slot, err := s.catalogRepo.FindTimeSlotForUpdate(ctx, tx, *req.TimeSlotID)
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return ErrTimeSlotNotFound
					}
					return err
				}
				if slot.AddOnID != addOn.ID {
					return ErrTimeSlotAddOnMismatch
				}
				slotAvail, err := s.inventory.TimeSlotAvailability(ctx, tx, slot)
				if err != nil {
					return err
				}
				if slotAvail < req.Quantity {
					return &InsufficientInventoryError{
						Unit:      "time slot",
						Title:     addOn.Title,
						Requested: req.Quantity,
						Available: slotAvail,
					}
				}
				unitPrice = slot.EffectivePrice(addOn)
				slotID = &slot.ID
			} else {
				addOnAvail, err := s.inventory.AddOnAvailability(ctx, tx, addOn)
				if err != nil {
					return err
				}
				if addOnAvail < req.Quantity {
					return &InsufficientInventoryError{
						Unit:      "add-on",
						Title:     addOn.Title,
						Requested: req.Quantity,
						Available: addOnAvail,
					}
				}
			}

			addOnItems = append(addOnItems, models.BookingAddOn{
				AddOnID:    addOn.ID,
				TimeSlotID: slotID,
				Quantity:   req.Quantity,
				Price:      unitPrice,
			})
			total += unitPrice * float64(req.Quantity)
		}

		// All checks passed; everything below writes.
		var hotelID *uuid.UUID
		if hotel != nil {
			if err := s.bookingRepo.CreateHotelBooking(ctx, tx, hotel); err != nil {
				return err
			}
			hotelID = &hotel.ID
		}

		booking = &models.Booking{
			UserID:         input.UserID,
			EventDateID:    eventDate.ID,
			PricingPlanID:  plan.ID,
			GroupSizeID:    groupSize.ID,
			HotelBookingID: hotelID,
			Status:         models.StatusConfirmed,
			TotalPrice:     roundCents(total),
			Rooms:          roomItems,
			AddOns:         addOnItems,
		}
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			return err
		}

		// Consuming the hold hands its reserved inventory to the booking.
		if hold != nil {
			if err := s.holdRepo.Delete(ctx, tx, hold); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateBookingUnits(ctx, booking)
	if s.publisher != nil {
		_ = s.publisher.Publish("booking.created", booking)
	}
	return booking, nil
}

// CancelBooking flips the booking to CANCELLED. Availability is derived from
// confirmed bookings, so the consumed inventory returns to the pool without a
// compensating write.
func (s *bookingService) CancelBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking *models.Booking

	err := s.txm.Do(ctx, func(tx *gorm.DB) error {
		b, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if b.Status == models.StatusCancelled {
			return ErrBookingAlreadyCancelled
		}
		if err := s.bookingRepo.UpdateStatus(ctx, tx, b.ID, models.StatusCancelled); err != nil {
			return err
		}
		b.Status = models.StatusCancelled
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	if full, err := s.bookingRepo.FindByID(ctx, booking.ID); err == nil {
		booking = full
	}
	s.invalidateBookingUnits(ctx, booking)
	if s.publisher != nil {
		_ = s.publisher.Publish("booking.cancelled", booking)
	}
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.bookingRepo.FindByUser(ctx, userID)
}

func (s *bookingService) invalidateBookingUnits(ctx context.Context, booking *models.Booking) {
	if booking == nil {
		return
	}
	units := []Unit{{Kind: UnitPricingPlan, ID: booking.PricingPlanID}}
	for _, item := range booking.Rooms {
		units = append(units, Unit{Kind: UnitRoom, ID: item.RoomID})
	}
	for _, item := range booking.AddOns {
		if item.TimeSlotID != nil {
			units = append(units, Unit{Kind: UnitTimeSlot, ID: *item.TimeSlotID})
		}
		units = append(units, Unit{Kind: UnitAddOn, ID: item.AddOnID})
	}
	if booking.HotelBooking != nil {
		units = append(units, Unit{Kind: UnitAccommodation, ID: booking.HotelBooking.AccommodationID})
	}
	s.inventory.Invalidate(ctx, units...)
}
