package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	bookingRepo "flupp/database/repository/booking"
	"flupp/models"
	"flupp/services/booking"
	"flupp/utils"

	stripe "github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

// DefaultPaymentService implements PaymentService.
type DefaultPaymentService struct {
	Bookings booking.BookingService
	Repo     bookingRepo.BookingRepository
	Gateway  Gateway
	Dedup    EventDedup
	Logger   *zap.Logger
}

// CreateIntent opens a payment intent for the booking. If a prior intent
// exists and is still awaiting payment its client secret is reused; a
// terminal or unreachable prior intent is replaced by a fresh one.
func (s *DefaultPaymentService) CreateIntent(ctx context.Context, bookingID string) (*models.CreateIntentResult, error) {
	b, err := s.Bookings.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.IsPaid(b.Status) {
		return nil, utils.ValidationError("This booking has already been paid")
	}
	if b.Status == models.StatusCancelled {
		return nil, utils.ValidationError("Cannot create payment for cancelled booking")
	}

	if b.PaymentIntentID != "" {
		existing, err := s.Gateway.GetIntent(ctx, b.PaymentIntentID)
		if err != nil {
			s.Logger.Warn("failed to retrieve existing payment intent, creating new one",
				zap.String("bookingId", bookingID), zap.Error(err))
		} else if existing.Status != IntentStatusSucceeded && existing.Status != IntentStatusCanceled {
			return &models.CreateIntentResult{ClientSecret: existing.ClientSecret}, nil
		}
	}

	// Defense in depth: the same bounds the validation layer enforces.
	if b.PriceCents < booking.MinPriceCents || b.PriceCents > booking.MaxPriceCents {
		return nil, utils.ValidationError("Invalid booking price")
	}

	intent, err := s.Gateway.CreateIntent(ctx, IntentRequest{
		AmountCents:   b.PriceCents,
		Currency:      b.Currency,
		BookingID:     b.ID,
		CustomerEmail: b.CustomerEmail,
	})
	if err != nil {
		return nil, mapDependencyError(err)
	}

	if err := s.Repo.SetPaymentIntent(ctx, b.ID, intent.ID); err != nil {
		return nil, err
	}

	s.Logger.Info("payment intent created",
		zap.String("bookingId", b.ID),
		zap.String("intentId", intent.ID),
	)
	return &models.CreateIntentResult{ClientSecret: intent.ClientSecret}, nil
}

// HandleConfirmation applies a payment-success event to booking state.
// The event must already be authenticated by the caller. This is the
// best-effort acknowledge path: internal failures are logged, flagged in
// the ack body and swallowed so the processor stops retrying.
func (s *DefaultPaymentService) HandleConfirmation(ctx context.Context, event stripe.Event) models.WebhookAck {
	if event.Type != "payment_intent.succeeded" {
		return models.WebhookAck{Received: true}
	}

	first, err := s.Dedup.MarkProcessed(ctx, event.ID)
	if err != nil {
		s.Logger.Error("event dedup store unavailable, processing anyway",
			zap.String("eventId", event.ID), zap.Error(err))
		first = true
	}
	if !first {
		s.Logger.Debug("replayed payment event ignored", zap.String("eventId", event.ID))
		return models.WebhookAck{Received: true}
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		s.Logger.Error("malformed payment intent in event",
			zap.String("eventId", event.ID), zap.Error(err))
		return models.WebhookAck{Received: true, Warning: "handler-error"}
	}

	bookingID := pi.Metadata["bookingId"]
	if bookingID == "" {
		s.Logger.Warn("payment event without booking metadata",
			zap.String("eventId", event.ID), zap.String("intentId", pi.ID))
		return models.WebhookAck{Received: true}
	}

	if _, err := s.Bookings.MarkPaid(ctx, bookingID); err != nil {
		s.Logger.Error("failed to apply payment confirmation",
			zap.String("eventId", event.ID),
			zap.String("bookingId", bookingID),
			zap.Error(err))
		return models.WebhookAck{Received: true, Warning: "handler-error"}
	}

	s.Logger.Info("payment confirmation applied",
		zap.String("eventId", event.ID),
		zap.String("bookingId", bookingID))
	return models.WebhookAck{Received: true}
}

func mapDependencyError(err error) error {
	if errors.Is(err, ErrGatewayTimeout) {
		return utils.NewAppError(http.StatusBadGateway, utils.CodeDependencyTimeout,
			"Payment processor timed out")
	}
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return utils.NewAppError(http.StatusBadGateway, utils.CodeDependencyError,
		"Payment processor error")
}
