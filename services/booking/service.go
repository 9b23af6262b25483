package booking

import (
	"context"
	"errors"
	"net/http"
	"time"

	bookingRepo "flupp/database/repository/booking"
	"flupp/models"
	"flupp/utils"

	"go.uber.org/zap"
)

// DefaultBookingService implements BookingService on top of a
// BookingRepository.
type DefaultBookingService struct {
	Repo    bookingRepo.BookingRepository
	Logger  *zap.Logger
	MaxDays int
}

// Create validates the input, checks for interval conflicts and persists
// the booking with the initial status. Clients never set status at
// creation time.
func (s *DefaultBookingService) Create(ctx context.Context, input models.BookingInput) (*models.Booking, error) {
	if err := ValidateBookingInput(&input, time.Now(), s.MaxDays); err != nil {
		return nil, utils.ValidationError(err.Error())
	}

	booking := &models.Booking{
		PetName:       input.PetName,
		Species:       input.Species,
		ServiceType:   input.ServiceType,
		StartAt:       input.StartAt.UTC(),
		EndAt:         input.EndAt.UTC(),
		PriceCents:    input.PriceCents,
		Currency:      input.Currency,
		CustomerEmail: input.CustomerEmail,
		Status:        models.StatusPendingPayment,
	}

	err := s.Repo.Create(ctx, booking)
	switch {
	case errors.Is(err, bookingRepo.ErrOverlap):
		return nil, utils.ConflictError("You already have a booking during this time period")
	case errors.Is(err, bookingRepo.ErrLockTimeout):
		return nil, utils.ConflictError("Another booking for this customer is being processed, try again")
	case err != nil:
		return nil, err
	}

	s.Logger.Info("booking created",
		zap.String("bookingId", booking.ID),
		zap.String("serviceType", booking.ServiceType),
		zap.Int64("priceCents", booking.PriceCents),
	)
	return booking, nil
}

// Get returns a booking by id.
func (s *DefaultBookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, utils.NotFoundError("Booking")
	}
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// UpdateStatus applies an explicit status change requested by a client.
// The transition is validated against the current state and applied with
// a compare-and-swap; if a concurrent mutation wins the race the
// operation re-reads and re-validates rather than overwriting.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, id string, rawStatus string) (*models.Booking, error) {
	target, err := ParseStatus(rawStatus)
	if err != nil {
		return nil, utils.ValidationError(err.Error())
	}

	const maxRetries = 3
	for attempt := 0; attempt < maxRetries; attempt++ {
		current, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if current.Status == target {
			return current, nil
		}
		if !CanTransition(current.Status, target) {
			return nil, utils.NewAppError(http.StatusBadRequest, utils.CodeInvalidTransition,
				"Cannot change status from "+string(current.Status)+" to "+string(target))
		}

		updated, err := s.Repo.UpdateStatusFrom(ctx, id, current.Status, target)
		if errors.Is(err, bookingRepo.ErrStale) {
			continue
		}
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, utils.NotFoundError("Booking")
		}
		if err != nil {
			return nil, err
		}

		s.Logger.Info("booking status updated",
			zap.String("bookingId", id),
			zap.String("from", string(current.Status)),
			zap.String("to", string(target)),
		)
		return updated, nil
	}
	return nil, utils.ConflictError("Booking is being modified concurrently, try again")
}

// MarkPaid transitions a booking to confirmed after a successful payment.
// Replays are no-ops; a cancelled booking is left untouched and the
// anomaly is logged for operator follow-up.
func (s *DefaultBookingService) MarkPaid(ctx context.Context, id string) (*models.Booking, error) {
	const maxRetries = 3
	for attempt := 0; attempt < maxRetries; attempt++ {
		current, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if IsPaid(current.Status) {
			return current, nil
		}
		if current.Status == models.StatusCancelled {
			s.Logger.Warn("payment confirmation for cancelled booking",
				zap.String("bookingId", id))
			return current, nil
		}

		updated, err := s.Repo.UpdateStatusFrom(ctx, id, current.Status, models.StatusConfirmed)
		if errors.Is(err, bookingRepo.ErrStale) {
			// Raced with another mutation; re-read, the confirmation
			// may already have been applied.
			continue
		}
		if err != nil {
			return nil, err
		}

		s.Logger.Info("booking marked paid", zap.String("bookingId", id))
		return updated, nil
	}
	return nil, utils.ConflictError("Booking is being modified concurrently, try again")
}
