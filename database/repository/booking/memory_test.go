package bookingRepo

import (
	"context"
	"testing"
	"time"

	"flupp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBooking(email string, start, end time.Time) *models.Booking {
	return &models.Booking{
		PetName:       "Max",
		Species:       "dog",
		ServiceType:   "grooming",
		StartAt:       start,
		EndAt:         end,
		PriceCents:    5000,
		Currency:      "GBP",
		CustomerEmail: email,
		Status:        models.StatusPendingPayment,
	}
}

func TestMemoryCreateAssignsFields(t *testing.T) {
	repo := NewMemoryBookingRepo()
	now := time.Now()

	b := newBooking("a@b.com", now.Add(time.Hour), now.Add(2*time.Hour))
	require.NoError(t, repo.Create(context.Background(), b))
	assert.NotEmpty(t, b.ID)
	assert.False(t, b.CreatedAt.IsZero())
	assert.False(t, b.UpdatedAt.IsZero())

	stored, err := repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, stored.ID)
}

func TestMemoryCreateOverlap(t *testing.T) {
	repo := NewMemoryBookingRepo()
	ctx := context.Background()
	base := time.Now().Add(time.Hour)

	require.NoError(t, repo.Create(ctx, newBooking("a@b.com", base, base.Add(2*time.Hour))))

	cases := []struct {
		name       string
		start, end time.Time
		wantErr    bool
	}{
		{"straddles start", base.Add(-time.Hour), base.Add(time.Hour), true},
		{"inside", base.Add(30 * time.Minute), base.Add(time.Hour), true},
		{"straddles end", base.Add(time.Hour), base.Add(3 * time.Hour), true},
		{"covers", base.Add(-time.Hour), base.Add(3 * time.Hour), true},
		{"adjacent before", base.Add(-time.Hour), base, false},
		{"adjacent after", base.Add(2 * time.Hour), base.Add(3 * time.Hour), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := repo.Create(ctx, newBooking("a@b.com", tc.start, tc.end))
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrOverlap)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMemoryOverlapIsPerCustomer(t *testing.T) {
	repo := NewMemoryBookingRepo()
	ctx := context.Background()
	base := time.Now().Add(time.Hour)

	require.NoError(t, repo.Create(ctx, newBooking("a@b.com", base, base.Add(time.Hour))))
	assert.NoError(t, repo.Create(ctx, newBooking("c@d.com", base, base.Add(time.Hour))))
}

func TestMemoryOverlapIgnoresCancelled(t *testing.T) {
	repo := NewMemoryBookingRepo()
	ctx := context.Background()
	base := time.Now().Add(time.Hour)

	first := newBooking("a@b.com", base, base.Add(time.Hour))
	require.NoError(t, repo.Create(ctx, first))
	_, err := repo.UpdateStatusFrom(ctx, first.ID, models.StatusPendingPayment, models.StatusCancelled)
	require.NoError(t, err)

	assert.NoError(t, repo.Create(ctx, newBooking("a@b.com", base, base.Add(time.Hour))))
}

func TestMemoryUpdateStatusFrom(t *testing.T) {
	repo := NewMemoryBookingRepo()
	ctx := context.Background()
	base := time.Now().Add(time.Hour)

	b := newBooking("a@b.com", base, base.Add(time.Hour))
	require.NoError(t, repo.Create(ctx, b))

	updated, err := repo.UpdateStatusFrom(ctx, b.ID, models.StatusPendingPayment, models.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, updated.Status)

	// The stored status no longer matches the expected one.
	_, err = repo.UpdateStatusFrom(ctx, b.ID, models.StatusPendingPayment, models.StatusCancelled)
	assert.ErrorIs(t, err, ErrStale)

	_, err = repo.UpdateStatusFrom(ctx, "nope", models.StatusPendingPayment, models.StatusConfirmed)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemorySetPaymentIntent(t *testing.T) {
	repo := NewMemoryBookingRepo()
	ctx := context.Background()
	base := time.Now().Add(time.Hour)

	b := newBooking("a@b.com", base, base.Add(time.Hour))
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.SetPaymentIntent(ctx, b.ID, "pi_123"))

	stored, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "pi_123", stored.PaymentIntentID)

	assert.ErrorIs(t, repo.SetPaymentIntent(ctx, "nope", "pi_123"), ErrNotFound)
}

func TestMemoryCancelExpiredPending(t *testing.T) {
	repo := NewMemoryBookingRepo()
	ctx := context.Background()
	now := time.Now()

	// Ended yesterday, never paid: should be swept.
	expired := newBooking("a@b.com", now.Add(-25*time.Hour), now.Add(-24*time.Hour))
	require.NoError(t, repo.Create(ctx, expired))

	// Ended yesterday but confirmed: left alone.
	paid := newBooking("c@d.com", now.Add(-25*time.Hour), now.Add(-24*time.Hour))
	require.NoError(t, repo.Create(ctx, paid))
	_, err := repo.UpdateStatusFrom(ctx, paid.ID, models.StatusPendingPayment, models.StatusConfirmed)
	require.NoError(t, err)

	// Still in the future: left alone.
	upcoming := newBooking("e@f.com", now.Add(time.Hour), now.Add(2*time.Hour))
	require.NoError(t, repo.Create(ctx, upcoming))

	swept, err := repo.CancelExpiredPending(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), swept)

	stored, err := repo.GetByID(ctx, expired.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, stored.Status)

	stored, err = repo.GetByID(ctx, upcoming.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingPayment, stored.Status)
}
