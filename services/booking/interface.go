package booking

import (
	"context"

	"flupp/models"
)

// BookingService defines the booking lifecycle operations exposed to
// handlers and to the payment bridge.
type BookingService interface {
	Create(ctx context.Context, input models.BookingInput) (*models.Booking, error)
	Get(ctx context.Context, id string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id string, rawStatus string) (*models.Booking, error)
	// MarkPaid applies a successful payment confirmation. It is
	// idempotent: confirming an already-paid booking is a no-op.
	MarkPaid(ctx context.Context, id string) (*models.Booking, error)
}
