package review

import (
	"context"

	"flupp/models"
)

// ReviewService gates review creation behind booking completion.
type ReviewService interface {
	Create(ctx context.Context, input models.ReviewInput) (*models.Review, error)
	ListForBooking(ctx context.Context, bookingID string) ([]models.Review, error)
}
