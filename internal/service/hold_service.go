package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sunsetfest/booking-backend/internal/models"
	"github.com/sunsetfest/booking-backend/internal/repository"
	"gorm.io/gorm"
)

type RoomHoldInput struct {
	RoomID   uuid.UUID
	Quantity int
}

type CreateHoldInput struct {
	UserID          string
	PricingPlanID   uuid.UUID
	NumberOfTickets int
	Rooms           []RoomHoldInput
}

// mergeRoomHoldInputs folds duplicate room lines into one, so availability is
// checked against the summed quantity rather than each line in isolation.
func mergeRoomHoldInputs(in []RoomHoldInput) []RoomHoldInput {
	if len(in) < 2 {
		return in
	}
	out := make([]RoomHoldInput, 0, len(in))
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

// HoldConfig carries the hold lifetimes. The combined TTL applies when the
// hold also reserves rooms; MaxLifetime caps creation-to-expiry across all
// extensions.
type HoldConfig struct {
	TTL         time.Duration
	CombinedTTL time.Duration
	MaxLifetime time.Duration
}

type HoldService interface {
	CreateHold(ctx context.Context, input CreateHoldInput) (*models.TicketHold, error)
	ExtendHold(ctx context.Context, id uuid.UUID, extraMinutes int) (*models.TicketHold, error)
	GetHold(ctx context.Context, id uuid.UUID) (*models.TicketHold, error)
}

type holdService struct {
	txm         repository.TxManager
	catalogRepo repository.CatalogRepository
	holdRepo    repository.HoldRepository
	inventory   InventoryService
	cfg         HoldConfig
}

func NewHoldService(
	txm repository.TxManager,
	catalogRepo repository.CatalogRepository,
	holdRepo repository.HoldRepository,
	inventory InventoryService,
	cfg HoldConfig,
) HoldService {
	return &holdService{
		txm:         txm,
		catalogRepo: catalogRepo,
		holdRepo:    holdRepo,
		inventory:   inventory,
		cfg:         cfg,
	}
}

func (s *holdService) CreateHold(ctx context.Context, input CreateHoldInput) (*models.TicketHold, error) {
	var hold *models.TicketHold

	err := s.txm.Do(ctx, func(tx *gorm.DB) error {
		now := time.Now()

		// Lock the plan row, then re-check availability inside the same
		// transaction: two concurrent holds on the same plan serialize here.
		plan, err := s.catalogRepo.FindPricingPlanForUpdate(ctx, tx, input.PricingPlanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPricingPlanNotFound
			}
			return err
		}

		avail, err := s.inventory.PlanAvailability(ctx, tx, plan, now, nil)
		if err != nil {
			return err
		}
		if avail < input.NumberOfTickets {
			return &InsufficientInventoryError{
				Unit:      "pricing plan",
				Title:     plan.Title,
				Requested: input.NumberOfTickets,
				Available: avail,
			}
		}

		ttl := s.cfg.TTL
		if len(input.Rooms) > 0 {
			// Combined multi-resource holds get the shorter window.
			ttl = s.cfg.CombinedTTL
		}
		expiresAt := now.Add(ttl)

		roomReqs := mergeRoomHoldInputs(input.Rooms)
		roomHolds := make([]models.RoomHold, 0, len(roomReqs))
		for _, req := range roomReqs {
			room, err := s.catalogRepo.FindRoomForUpdate(ctx, tx, req.RoomID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrRoomNotFound
				}
				return err
			}
			roomAvail, err := s.inventory.RoomAvailability(ctx, tx, room, now, nil)
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
			roomHolds = append(roomHolds, models.RoomHold{
				UserID:    input.UserID,
				RoomID:    room.ID,
				Quantity:  req.Quantity,
				ExpiresAt: expiresAt,
			})
		}

		hold = &models.TicketHold{
			UserID:          input.UserID,
			PricingPlanID:   plan.ID,
			NumberOfTickets: input.NumberOfTickets,
			ExpiresAt:       expiresAt,
			RoomHolds:       roomHolds,
		}
		return s.holdRepo.Create(ctx, tx, hold)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateHoldUnits(ctx, hold)
	return hold, nil
}

func (s *holdService) ExtendHold(ctx context.Context, id uuid.UUID, extraMinutes int) (*models.TicketHold, error) {
	var hold *models.TicketHold

	err := s.txm.Do(ctx, func(tx *gorm.DB) error {
		now := time.Now()

		h, err := s.holdRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHoldNotFound
			}
			return err
		}
		// An expired hold no longer reserves anything; treat it as gone.
		if !h.Active(now) {
			return ErrHoldNotFound
		}

		newExpiry := h.ExpiresAt.Add(time.Duration(extraMinutes) * time.Minute)
		if newExpiry.Sub(h.CreatedAt) > s.cfg.MaxLifetime {
			return ErrHoldLifetimeExceeded
		}

		if err := s.holdRepo.Extend(ctx, tx, h, newExpiry); err != nil {
			return err
		}

		h.ExpiresAt = newExpiry
		for i := range h.RoomHolds {
			h.RoomHolds[i].ExpiresAt = newExpiry
		}
		hold = h
		return nil
	})
	if err != nil {
		return nil, err
	}
	return hold, nil
}

func (s *holdService) GetHold(ctx context.Context, id uuid.UUID) (*models.TicketHold, error) {
	hold, err := s.holdRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHoldNotFound
		}
		return nil, err
	}
	if !hold.Active(time.Now()) {
		return nil, ErrHoldNotFound
	}
	return hold, nil
}

func (s *holdService) invalidateHoldUnits(ctx context.Context, hold *models.TicketHold) {
	units := []Unit{{Kind: UnitPricingPlan, ID: hold.PricingPlanID}}
	for _, rh := range hold.RoomHolds {
		units = append(units, Unit{Kind: UnitRoom, ID: rh.RoomID})
	}
	s.inventory.Invalidate(ctx, units...)
}
