package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sunsetfest/booking-backend/internal/models"
	"gorm.io/gorm"
)

type HoldRepository interface {
	// Create persists the ticket hold together with its room holds and the
	// m2m link rows.
	Create(ctx context.Context, tx *gorm.DB, hold *models.TicketHold) error
	// FindByID loads a hold with its room holds, expired or not; callers
	// decide what expiry means for them.
	FindByID(ctx context.Context, id uuid.UUID) (*models.TicketHold, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.TicketHold, error)
	// Extend moves expires_at to the given instant on the hold and every
	// linked room hold.
	Extend(ctx context.Context, tx *gorm.DB, hold *models.TicketHold, expiresAt time.Time) error
	// Delete removes the hold, its link rows and its room holds.
	Delete(ctx context.Context, tx *gorm.DB, hold *models.TicketHold) error
	// DeleteExpired sweeps holds (and orphaned room holds) that expired
	// before the given instant. Returns the number of ticket holds removed.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type holdRepository struct {
	db *gorm.DB
}

func NewHoldRepository(db *gorm.DB) HoldRepository {
	return &holdRepository{db: db}
}

func (r *holdRepository) Create(ctx context.Context, tx *gorm.DB, hold *models.TicketHold) error {
	return conn(r.db, tx).WithContext(ctx).Create(hold).Error
}

func (r *holdRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.TicketHold, error) {
	var hold models.TicketHold
	err := r.db.WithContext(ctx).
		Preload("RoomHolds").
		First(&hold, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &hold, nil
}

func (r *holdRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.TicketHold, error) {
	var hold models.TicketHold
	// Lock the hold row itself; room holds are loaded after, inside the same
	// transaction.
	err := tx.WithContext(ctx).
		Raw("SELECT * FROM ticket_holds WHERE id = ? FOR UPDATE", id).
		Scan(&hold).Error
	if err != nil {
		return nil, err
	}
	if hold.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	if err := tx.WithContext(ctx).Model(&hold).Association("RoomHolds").Find(&hold.RoomHolds); err != nil {
		return nil, err
	}
	return &hold, nil
}

func (r *holdRepository) Extend(ctx context.Context, tx *gorm.DB, hold *models.TicketHold, expiresAt time.Time) error {
	db := conn(r.db, tx).WithContext(ctx)

	if err := db.Model(&models.TicketHold{}).
		Where("id = ?", hold.ID).
		Update("expires_at", expiresAt).Error; err != nil {
		return err
	}

	if len(hold.RoomHolds) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(hold.RoomHolds))
	for i, rh := range hold.RoomHolds {
		ids[i] = rh.ID
	}
	return db.Model(&models.RoomHold{}).
		Where("id IN ?", ids).
		Update("expires_at", expiresAt).Error
}

func (r *holdRepository) Delete(ctx context.Context, tx *gorm.DB, hold *models.TicketHold) error {
	db := conn(r.db, tx).WithContext(ctx)

	if err := db.Model(hold).Association("RoomHolds").Clear(); err != nil {
		return err
	}
	for i := range hold.RoomHolds {
		if err := db.Delete(&hold.RoomHolds[i]).Error; err != nil {
			return err
		}
	}
	return db.Delete(hold).Error
}

func (r *holdRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	db := r.db.WithContext(ctx)

	// Link rows first, then the holds themselves, then room holds nothing
	// references anymore.
	if err := db.Exec(
		`DELETE FROM ticket_hold_room_holds
		 WHERE ticket_hold_id IN (SELECT id FROM ticket_holds WHERE expires_at < ?)`,
		before,
	).Error; err != nil {
		return 0, err
	}

	res := db.Where("expires_at < ?", before).Delete(&models.TicketHold{})
	if res.Error != nil {
		return 0, res.Error
	}

	if err := db.Exec(
		`DELETE FROM room_holds
		 WHERE expires_at < ?
		   AND id NOT IN (SELECT room_hold_id FROM ticket_hold_room_holds)`,
		before,
	).Error; err != nil {
		return res.RowsAffected, err
	}

	return res.RowsAffected, nil
}
