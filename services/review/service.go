package review

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	reviewRepo "flupp/database/repository/review"
	"flupp/models"
	"flupp/services/booking"
	"flupp/utils"

	"go.uber.org/zap"
)

// Validation bounds for review input.
const (
	MinRating     = 1
	MaxRating     = 5
	MinCommentLen = 5
	MaxCommentLen = 1000
)

// DefaultReviewService implements ReviewService.
type DefaultReviewService struct {
	Repo     reviewRepo.ReviewRepository
	Bookings booking.BookingService
	Logger   *zap.Logger
}

// Create validates the input, checks the referenced booking has reached
// the completed state and persists the review. At most one review may
// exist per booking.
func (s *DefaultReviewService) Create(ctx context.Context, input models.ReviewInput) (*models.Review, error) {
	if err := validateReviewInput(&input); err != nil {
		return nil, utils.ValidationError(err.Error())
	}

	b, err := s.Bookings.Get(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.StatusCompleted {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.CodeNotEligible,
			"Can only review completed bookings")
	}

	rv := &models.Review{
		BookingID:    input.BookingID,
		Rating:       input.Rating,
		Comment:      input.Comment,
		ReviewerName: input.ReviewerName,
	}
	err = s.Repo.Create(ctx, rv)
	if errors.Is(err, reviewRepo.ErrDuplicate) {
		return nil, utils.NewAppError(http.StatusConflict, utils.CodeDuplicateReview,
			"A review already exists for this booking")
	}
	if err != nil {
		return nil, err
	}

	s.Logger.Info("review created",
		zap.String("bookingId", rv.BookingID),
		zap.Int("rating", rv.Rating),
	)
	return rv, nil
}

// ListForBooking returns all reviews for a booking, newest first. An
// unknown booking id is a NotFound, not an empty list.
func (s *DefaultReviewService) ListForBooking(ctx context.Context, bookingID string) ([]models.Review, error) {
	if _, err := s.Bookings.Get(ctx, bookingID); err != nil {
		return nil, err
	}
	return s.Repo.ListByBooking(ctx, bookingID)
}

func validateReviewInput(in *models.ReviewInput) error {
	in.Comment = strings.TrimSpace(in.Comment)
	in.ReviewerName = strings.TrimSpace(in.ReviewerName)

	switch {
	case in.BookingID == "":
		return errors.New("Booking ID is required")
	case in.Rating < MinRating:
		return errors.New("Rating must be at least 1")
	case in.Rating > MaxRating:
		return errors.New("Rating cannot exceed 5")
	case utf8.RuneCountInString(in.Comment) < MinCommentLen:
		return errors.New("Comment must be at least 5 characters")
	case utf8.RuneCountInString(in.Comment) > MaxCommentLen:
		return errors.New("Comment too long")
	case in.ReviewerName == "":
		return errors.New("Reviewer name is required")
	}
	return nil
}
