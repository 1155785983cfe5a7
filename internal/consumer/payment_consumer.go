package consumer

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/sunsetfest/booking-backend/internal/service"
)

const SignatureHeader = "x-signature"

// checkoutResult is the payment bridge payload: the provider-side worker
// publishes one message per resolved checkout session.
type checkoutResult struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
}

// PaymentConsumer applies checkout results to bookings. Every message must
// carry an HMAC-SHA256 signature over the raw body; unsigned or tampered
// messages are dropped without touching any booking.
type PaymentConsumer struct {
	svc    service.PaymentService
	secret []byte
	log    *logrus.Logger
}

func NewPaymentConsumer(svc service.PaymentService, webhookSecret string, log *logrus.Logger) *PaymentConsumer {
	return &PaymentConsumer{svc: svc, secret: []byte(webhookSecret), log: log}
}

func (pc *PaymentConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			pc.handleMessage(msg)
		}
		pc.log.Info("payment consumer channel closed, stopping")
	}()
}

func (pc *PaymentConsumer) handleMessage(msg amqp.Delivery) {
	if !pc.verifySignature(msg) {
		pc.log.Warn("payment message rejected: bad or missing signature")
		msg.Nack(false, false)
		return
	}

	var result checkoutResult
	if err := json.Unmarshal(msg.Body, &result); err != nil {
		pc.log.WithError(err).Error("failed to unmarshal payment message")
		msg.Nack(false, false)
		return
	}

	var succeeded bool
	switch result.Status {
	case "completed":
		succeeded = true
	case "failed":
		succeeded = false
	default:
		pc.log.WithField("status", result.Status).Warn("unknown checkout status, dropping")
		msg.Nack(false, false)
		return
	}

	err := pc.svc.ApplyCheckoutResult(context.Background(), result.SessionID, succeeded)
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			// The session was never registered here; requeueing cannot fix that.
			pc.log.WithField("session_id", result.SessionID).Warn("checkout result for unknown session")
			msg.Nack(false, false)
			return
		}
		pc.log.WithError(err).WithField("session_id", result.SessionID).Error("failed to apply checkout result")
		msg.Nack(false, true) // requeue
		return
	}

	pc.log.WithFields(logrus.Fields{
		"session_id": result.SessionID,
		"status":     result.Status,
	}).Info("applied checkout result")
	msg.Ack(false)
}

func (pc *PaymentConsumer) verifySignature(msg amqp.Delivery) bool {
	raw, ok := msg.Headers[SignatureHeader]
	if !ok {
		return false
	}
	sigHex, ok := raw.(string)
	if !ok {
		return false
	}
	sig, err := hex.DecodeString(sigHex)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, pc.secret)
	mac.Write(msg.Body)
	return hmac.Equal(sig, mac.Sum(nil))
}
