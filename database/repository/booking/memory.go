package bookingRepo

import (
	"context"
	"sync"
	"time"

	"flupp/models"

	"github.com/google/uuid"
)

// memoryBookingRepo keeps bookings in a map guarded by a mutex. The lock
// makes the overlap check and insert atomic, matching the contract the
// Mongo backing provides through its advisory lock.
type memoryBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
}

// NewMemoryBookingRepo returns an in-memory BookingRepository. Intended
// for tests and local development without a MongoDB instance.
func NewMemoryBookingRepo() BookingRepository {
	return &memoryBookingRepo{bookings: make(map[string]models.Booking)}
}

func (r *memoryBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.bookings {
		if existing.CustomerEmail != booking.CustomerEmail {
			continue
		}
		if existing.Status == models.StatusCancelled {
			continue
		}
		if existing.StartAt.Before(booking.EndAt) && existing.EndAt.After(booking.StartAt) {
			return ErrOverlap
		}
	}

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *memoryBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &booking, nil
}

func (r *memoryBookingRepo) UpdateStatusFrom(ctx context.Context, id string, from, to models.BookingStatus) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	if booking.Status != from {
		return nil, ErrStale
	}
	booking.Status = to
	booking.UpdatedAt = time.Now().UTC()
	r.bookings[id] = booking
	return &booking, nil
}

func (r *memoryBookingRepo) SetPaymentIntent(ctx context.Context, id, intentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok {
		return ErrNotFound
	}
	booking.PaymentIntentID = intentID
	booking.UpdatedAt = time.Now().UTC()
	r.bookings[id] = booking
	return nil
}

func (r *memoryBookingRepo) CancelExpiredPending(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var cancelled int64
	for id, booking := range r.bookings {
		if booking.Status == models.StatusPendingPayment && booking.EndAt.Before(now) {
			booking.Status = models.StatusCancelled
			booking.UpdatedAt = now
			r.bookings[id] = booking
			cancelled++
		}
	}
	return cancelled, nil
}
