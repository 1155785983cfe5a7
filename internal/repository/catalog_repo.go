package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sunsetfest/booking-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogRepository reads the sellable catalog. The ForUpdate variants acquire
// a row-level lock inside the given transaction; availability for a unit is
// only ever re-checked while its capacity row is held.
type CatalogRepository interface {
	FindEventDate(ctx context.Context, id uuid.UUID) (*models.EventDate, error)
	FindPricingPlan(ctx context.Context, id uuid.UUID) (*models.PricingPlan, error)
	FindPricingPlanForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.PricingPlan, error)
	FindGroupSize(ctx context.Context, id uuid.UUID) (*models.GroupSize, error)
	FindAccommodation(ctx context.Context, id uuid.UUID) (*models.Accommodation, error)
	FindAccommodationForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Accommodation, error)
	FindRoom(ctx context.Context, id uuid.UUID) (*models.Room, error)
	FindRoomForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Room, error)
	FindAddOn(ctx context.Context, id uuid.UUID) (*models.AddOn, error)
	FindAddOnForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.AddOn, error)
	FindTimeSlot(ctx context.Context, id uuid.UUID) (*models.AddOnTimeSlot, error)
	FindTimeSlotForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.AddOnTimeSlot, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) FindEventDate(ctx context.Context, id uuid.UUID) (*models.EventDate, error) {
	var date models.EventDate
	if err := r.db.WithContext(ctx).First(&date, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &date, nil
}

func (r *catalogRepository) FindPricingPlan(ctx context.Context, id uuid.UUID) (*models.PricingPlan, error) {
	var plan models.PricingPlan
	if err := r.db.WithContext(ctx).First(&plan, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *catalogRepository) FindPricingPlanForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.PricingPlan, error) {
	var plan models.PricingPlan
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&plan, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *catalogRepository) FindGroupSize(ctx context.Context, id uuid.UUID) (*models.GroupSize, error) {
	var size models.GroupSize
	if err := r.db.WithContext(ctx).First(&size, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &size, nil
}

func (r *catalogRepository) FindAccommodation(ctx context.Context, id uuid.UUID) (*models.Accommodation, error) {
	var acc models.Accommodation
	if err := r.db.WithContext(ctx).First(&acc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *catalogRepository) FindAccommodationForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Accommodation, error) {
	var acc models.Accommodation
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&acc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *catalogRepository) FindRoom(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *catalogRepository) FindRoomForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Room, error) {
	var room models.Room
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *catalogRepository) FindAddOn(ctx context.Context, id uuid.UUID) (*models.AddOn, error) {
	var addOn models.AddOn
	if err := r.db.WithContext(ctx).First(&addOn, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &addOn, nil
}

func (r *catalogRepository) FindAddOnForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.AddOn, error) {
	var addOn models.AddOn
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&addOn, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &addOn, nil
}

func (r *catalogRepository) FindTimeSlot(ctx context.Context, id uuid.UUID) (*models.AddOnTimeSlot, error) {
	var slot models.AddOnTimeSlot
	if err := r.db.WithContext(ctx).First(&slot, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *catalogRepository) FindTimeSlotForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.AddOnTimeSlot, error) {
	var slot models.AddOnTimeSlot
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&slot, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}
