// Package bookingRepo persists booking records. Two backings exist:
// MongoDB for production and an in-memory store for tests and local
// development. Handlers never touch shared mutable state directly;
// everything goes through the BookingRepository interface.
package bookingRepo

import (
	"context"
	"errors"
	"time"

	"flupp/models"
)

// ErrNotFound is returned when no booking matches the requested id.
var ErrNotFound = errors.New("booking not found")

// ErrOverlap is returned by Create when the customer already holds a
// non-cancelled booking whose interval overlaps the requested one.
// Handlers should translate this into an HTTP 409 response.
var ErrOverlap = errors.New("overlapping booking exists")

// ErrStale is returned by UpdateStatusFrom when the booking's status no
// longer matches the expected value, i.e. a concurrent mutation won.
var ErrStale = errors.New("booking status changed concurrently")

// ErrLockTimeout is returned when the per-customer creation lock could
// not be acquired in time.
var ErrLockTimeout = errors.New("could not acquire booking lock")

// BookingRepository is the storage contract for bookings.
//
// Create must make the overlap check and the insert atomic with respect
// to other Create calls for the same customer email. UpdateStatusFrom is
// a compare-and-swap on status so that a manual status update and an
// asynchronous payment confirmation cannot silently overwrite each other.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	UpdateStatusFrom(ctx context.Context, id string, from, to models.BookingStatus) (*models.Booking, error)
	SetPaymentIntent(ctx context.Context, id, intentID string) error
	CancelExpiredPending(ctx context.Context, now time.Time) (int64, error)
}
