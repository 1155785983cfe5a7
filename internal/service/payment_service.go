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

type PaymentService interface {
	// RegisterPayment records a checkout session for a booking before the
	// provider redirect. The webhook later resolves it by session id.
	RegisterPayment(ctx context.Context, bookingID uuid.UUID, sessionID, currency string) (*models.Payment, error)
	// ApplyCheckoutResult flips the payment and its booking according to the
	// checkout outcome. Repeated deliveries for an already resolved session
	// are acknowledged without effect.
	ApplyCheckoutResult(ctx context.Context, sessionID string, succeeded bool) error
	GetBookingBySession(ctx context.Context, sessionID string) (*models.Booking, error)
}

type paymentService struct {
	txm         repository.TxManager
	paymentRepo repository.PaymentRepository
	bookingRepo repository.BookingRepository
	publisher   EventPublisher
}

func NewPaymentService(
	txm repository.TxManager,
	paymentRepo repository.PaymentRepository,
	bookingRepo repository.BookingRepository,
	publisher EventPublisher,
) PaymentService {
	return &paymentService{
		txm:         txm,
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		publisher:   publisher,
	}
}

func (s *paymentService) RegisterPayment(ctx context.Context, bookingID uuid.UUID, sessionID, currency string) (*models.Payment, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	payment := &models.Payment{
		BookingID: booking.ID,
		SessionID: sessionID,
		Amount:    booking.TotalPrice,
		Currency:  currency,
		Status:    models.PaymentPending,
	}
	if err := s.paymentRepo.Create(ctx, nil, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) ApplyCheckoutResult(ctx context.Context, sessionID string, succeeded bool) error {
	var (
		bookingID      uuid.UUID
		applied        bool
		refundRequired bool
	)

	err := s.txm.Do(ctx, func(tx *gorm.DB) error {
		payment, err := s.paymentRepo.FindBySessionIDForUpdate(ctx, tx, sessionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}
		if payment.Status != models.PaymentPending {
			// Already resolved; the webhook was redelivered.
			return nil
		}

		// The booking may have been cancelled while checkout was in flight.
		// Its status decides what a late result is allowed to do, so read it
		// under the same locks.
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, payment.BookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if succeeded {
			if err := s.paymentRepo.UpdateStatus(ctx, tx, payment.ID, models.PaymentCompleted); err != nil {
				return err
			}
			if booking.Status == models.StatusCancelled {
				// CANCELLED is terminal. Keep the booking cancelled and
				// surface the captured charge for refund.
				refundRequired = true
			} else if err := s.bookingRepo.SetPaid(ctx, tx, payment.BookingID, models.StatusConfirmed, true); err != nil {
				return err
			}
		} else {
			if err := s.paymentRepo.UpdateStatus(ctx, tx, payment.ID, models.PaymentFailed); err != nil {
				return err
			}
			if booking.Status != models.StatusCancelled {
				if err := s.bookingRepo.UpdateStatus(ctx, tx, payment.BookingID, models.StatusCancelled); err != nil {
					return err
				}
			}
		}
		bookingID = payment.BookingID
		applied = true
		return nil
	})
	if err != nil {
		return err
	}

	if applied && s.publisher != nil {
		routingKey := "booking.confirmed"
		switch {
		case refundRequired:
			routingKey = "booking.refund_required"
		case !succeeded:
			routingKey = "booking.cancelled"
		}
		_ = s.publisher.Publish(routingKey, map[string]any{
			"booking_id": bookingID,
			"session_id": sessionID,
			"paid_at":    time.Now().UTC(),
		})
	}
	return nil
}

func (s *paymentService) GetBookingBySession(ctx context.Context, sessionID string) (*models.Booking, error) {
	payment, err := s.paymentRepo.FindBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	booking, err := s.bookingRepo.FindByID(ctx, payment.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}
