package reviewRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"flupp/models"

	"github.com/google/uuid"
)

type memoryReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]models.Review // keyed by review id
}

// NewMemoryReviewRepo returns an in-memory ReviewRepository for tests
// and local development.
func NewMemoryReviewRepo() ReviewRepository {
	return &memoryReviewRepo{reviews: make(map[string]models.Review)}
}

func (r *memoryReviewRepo) Create(ctx context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.reviews {
		if existing.BookingID == review.BookingID {
			return ErrDuplicate
		}
	}

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	review.CreatedAt = time.Now().UTC()
	r.reviews[review.ID] = *review
	return nil
}

func (r *memoryReviewRepo) ListByBooking(ctx context.Context, bookingID string) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reviews := []models.Review{}
	for _, review := range r.reviews {
		if review.BookingID == bookingID {
			reviews = append(reviews, review)
		}
	}
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews, nil
}
