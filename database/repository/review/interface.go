// Package reviewRepo persists reviews. Reviews are write-once: there is
// no update or delete path.
package reviewRepo

import (
	"context"
	"errors"

	"flupp/models"
)

// ErrDuplicate is returned when a review already exists for the booking.
var ErrDuplicate = errors.New("review already exists for booking")

// ReviewRepository is the storage contract for reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	ListByBooking(ctx context.Context, bookingID string) ([]models.Review, error)
}
