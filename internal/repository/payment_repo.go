package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sunsetfest/booking-backend/internal/models"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, payment *models.Payment) error
	FindBySessionID(ctx context.Context, sessionID string) (*models.Payment, error)
	// FindBySessionIDForUpdate locks the payment row so concurrent deliveries
	// of the same checkout result serialize.
	FindBySessionIDForUpdate(ctx context.Context, tx *gorm.DB, sessionID string) (*models.Payment, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status models.PaymentStatus) error
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, tx *gorm.DB, payment *models.Payment) error {
	return conn(r.db, tx).WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) FindBySessionID(ctx context.Context, sessionID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).First(&payment, "session_id = ?", sessionID).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindBySessionIDForUpdate(ctx context.Context, tx *gorm.DB, sessionID string) (*models.Payment, error) {
	var payment models.Payment
	err := tx.WithContext(ctx).
		Raw("SELECT * FROM payments WHERE session_id = ? FOR UPDATE", sessionID).
		Scan(&payment).Error
	if err != nil {
		return nil, err
	}
	if payment.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &payment, nil
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status models.PaymentStatus) error {
	return conn(r.db, tx).WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ?", id).
		Update("status", status).Error
}
