package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sunsetfest/booking-backend/internal/models"
	"github.com/sunsetfest/booking-backend/internal/repository"
	"github.com/sunsetfest/booking-backend/pkg/cache"
	"gorm.io/gorm"
)

// UnitKind tags the sellable-unit variants. Every unit answers the same
// question with its own aggregates: capacity minus confirmed consumption
// minus active holds, floored at zero.
type UnitKind string

const (
	UnitPricingPlan   UnitKind = "pricing_plan"
	UnitRoom          UnitKind = "room"
	UnitAccommodation UnitKind = "accommodation"
	UnitAddOn         UnitKind = "add_on"
	UnitTimeSlot      UnitKind = "time_slot"
)

func ParseUnitKind(s string) (UnitKind, error) {
	switch UnitKind(s) {
	case UnitPricingPlan, UnitRoom, UnitAccommodation, UnitAddOn, UnitTimeSlot:
		return UnitKind(s), nil
	}
	return "", fmt.Errorf("unknown unit kind %q", s)
}

type Unit struct {
	Kind UnitKind
	ID   uuid.UUID
}

func (u Unit) cacheKey() string {
	return fmt.Sprintf("availability:%s:%s", u.Kind, u.ID)
}

// InventoryService derives live availability. The Available dispatcher serves
// the read path (optionally through the cache); the per-model methods serve
// transactional callers that already hold row locks and pass their tx.
//
// Ticket-hold aggregation is scoped per pricing plan: a hold counts only
// against the plan it references.
type InventoryService interface {
	Available(ctx context.Context, unit Unit) (int, error)

	PlanAvailability(ctx context.Context, tx *gorm.DB, plan *models.PricingPlan, asOf time.Time, excludeHold *uuid.UUID) (int, error)
	RoomAvailability(ctx context.Context, tx *gorm.DB, room *models.Room, asOf time.Time, excludeHold *uuid.UUID) (int, error)
	AccommodationAvailability(ctx context.Context, tx *gorm.DB, acc *models.Accommodation) (int, error)
	AddOnAvailability(ctx context.Context, tx *gorm.DB, addOn *models.AddOn) (int, error)
	TimeSlotAvailability(ctx context.Context, tx *gorm.DB, slot *models.AddOnTimeSlot) (int, error)

	// Invalidate drops cached availability for the given units after a write.
	Invalidate(ctx context.Context, units ...Unit)
}

type inventoryService struct {
	catalogRepo   repository.CatalogRepository
	inventoryRepo repository.InventoryRepository
	cache         *cache.Cache
}

func NewInventoryService(catalogRepo repository.CatalogRepository, inventoryRepo repository.InventoryRepository, c *cache.Cache) InventoryService {
	return &inventoryService{catalogRepo: catalogRepo, inventoryRepo: inventoryRepo, cache: c}
}

// available floors the subtraction at zero; stale holds or over-admitted
// bookings must never surface as negative availability.
func available(capacity, confirmed, held int) int {
	n := capacity - confirmed - held
	if n < 0 {
		return 0
	}
	return n
}

func (s *inventoryService) Available(ctx context.Context, unit Unit) (int, error) {
	if n, ok := s.cache.GetInt(ctx, unit.cacheKey()); ok {
		return n, nil
	}

	now := time.Now()
	var (
		n   int
		err error
	)
	switch unit.Kind {
	case UnitPricingPlan:
		var plan *models.PricingPlan
		if plan, err = s.catalogRepo.FindPricingPlan(ctx, unit.ID); err == nil {
			n, err = s.PlanAvailability(ctx, nil, plan, now, nil)
		} else if errors.Is(err, gorm.ErrRecordNotFound) {
			err = ErrPricingPlanNotFound
		}
	case UnitRoom:
		var room *models.Room
		if room, err = s.catalogRepo.FindRoom(ctx, unit.ID); err == nil {
			n, err = s.RoomAvailability(ctx, nil, room, now, nil)
		} else if errors.Is(err, gorm.ErrRecordNotFound) {
			err = ErrRoomNotFound
		}
	case UnitAccommodation:
		var acc *models.Accommodation
		if acc, err = s.catalogRepo.FindAccommodation(ctx, unit.ID); err == nil {
			n, err = s.AccommodationAvailability(ctx, nil, acc)
		} else if errors.Is(err, gorm.ErrRecordNotFound) {
			err = ErrAccommodationNotFound
		}
	case UnitAddOn:
		var addOn *models.AddOn
		if addOn, err = s.catalogRepo.FindAddOn(ctx, unit.ID); err == nil {
			n, err = s.AddOnAvailability(ctx, nil, addOn)
		} else if errors.Is(err, gorm.ErrRecordNotFound) {
			err = ErrAddOnNotFound
		}
	case UnitTimeSlot:
		var slot *models.AddOnTimeSlot
		if slot, err = s.catalogRepo.FindTimeSlot(ctx, unit.ID); err == nil {
			n, err = s.TimeSlotAvailability(ctx, nil, slot)
		} else if errors.Is(err, gorm.ErrRecordNotFound) {
			err = ErrTimeSlotNotFound
		}
	default:
		err = fmt.Errorf("unknown unit kind %q", unit.Kind)
	}
	if err != nil {
		return 0, err
	}

	s.cache.SetInt(ctx, unit.cacheKey(), n)
	return n, nil
}

func (s *inventoryService) PlanAvailability(ctx context.Context, tx *gorm.DB, plan *models.PricingPlan, asOf time.Time, excludeHold *uuid.UUID) (int, error) {
	confirmed, err := s.inventoryRepo.ConfirmedPlanPersons(ctx, tx, plan.ID)
	if err != nil {
		return 0, err
	}
	held, err := s.inventoryRepo.ActivePlanHoldTickets(ctx, tx, plan.ID, asOf, excludeHold)
	if err != nil {
		return 0, err
	}
	return available(plan.TotalTickets, confirmed, held), nil
}

func (s *inventoryService) RoomAvailability(ctx context.Context, tx *gorm.DB, room *models.Room, asOf time.Time, excludeHold *uuid.UUID) (int, error) {
	confirmed, err := s.inventoryRepo.ConfirmedRoomQuantity(ctx, tx, room.ID)
	if err != nil {
		return 0, err
	}
	held, err := s.inventoryRepo.ActiveRoomHoldQuantity(ctx, tx, room.ID, asOf, excludeHold)
	if err != nil {
		return 0, err
	}
	return available(room.TotalRooms, confirmed, held), nil
}

func (s *inventoryService) AccommodationAvailability(ctx context.Context, tx *gorm.DB, acc *models.Accommodation) (int, error) {
	confirmed, err := s.inventoryRepo.ConfirmedAccommodationPersons(ctx, tx, acc.ID)
	if err != nil {
		return 0, err
	}
	return available(acc.TotalTickets, confirmed, 0), nil
}

func (s *inventoryService) AddOnAvailability(ctx context.Context, tx *gorm.DB, addOn *models.AddOn) (int, error) {
	confirmed, err := s.inventoryRepo.ConfirmedAddOnQuantity(ctx, tx, addOn.ID)
	if err != nil {
		return 0, err
	}
	return available(addOn.TotalTickets, confirmed, 0), nil
}

func (s *inventoryService) TimeSlotAvailability(ctx context.Context, tx *gorm.DB, slot *models.AddOnTimeSlot) (int, error) {
	confirmed, err := s.inventoryRepo.ConfirmedTimeSlotQuantity(ctx, tx, slot.ID)
	if err != nil {
		return 0, err
	}
	return available(slot.TotalCapacity, confirmed, 0), nil
}

func (s *inventoryService) Invalidate(ctx context.Context, units ...Unit) {
	if len(units) == 0 {
		return
	}
	keys := make([]string, len(units))
	for i, u := range units {
		keys[i] = u.cacheKey()
	}
	s.cache.Delete(ctx, keys...)
}
