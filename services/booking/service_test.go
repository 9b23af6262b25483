package booking

import (
	"context"
	"testing"
	"time"

	bookingRepo "flupp/database/repository/booking"
	"flupp/models"
	"flupp/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService() *DefaultBookingService {
	return &DefaultBookingService{
		Repo:   bookingRepo.NewMemoryBookingRepo(),
		Logger: zap.NewNop(),
	}
}

func TestCreateAssignsServerFields(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(time.Now()))
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.StatusPendingPayment, created.Status)
	assert.False(t, created.CreatedAt.IsZero())
	assert.True(t, created.EndAt.After(created.StartAt))

	// Round trip: fetch returns field-for-field identical data.
	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func TestCreateUniqueIDs(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	now := time.Now()

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		in := validInput(now)
		in.StartAt = now.Add(time.Duration(i+1) * 24 * time.Hour)
		in.EndAt = in.StartAt.Add(time.Hour)
		created, err := svc.Create(ctx, in)
		require.NoError(t, err)
		assert.False(t, seen[created.ID])
		seen[created.ID] = true
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc := newTestService()
	in := validInput(time.Now())
	in.PriceCents = 10

	_, err := svc.Create(context.Background(), in)
	requireAppError(t, err, utils.CodeValidation)
}

func TestCreateOverlapConflict(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	now := time.Now()

	first := validInput(now)
	_, err := svc.Create(ctx, first)
	require.NoError(t, err)

	// Same customer, overlapping interval.
	second := validInput(now)
	second.StartAt = first.StartAt.Add(30 * time.Minute)
	second.EndAt = first.EndAt.Add(30 * time.Minute)
	_, err = svc.Create(ctx, second)
	requireAppError(t, err, utils.CodeBookingConflict)

	// Different customer is fine.
	second.CustomerEmail = "c@d.com"
	_, err = svc.Create(ctx, second)
	assert.NoError(t, err)

	// Back-to-back intervals do not overlap (half-open).
	adjacent := validInput(now)
	adjacent.StartAt = first.EndAt
	adjacent.EndAt = first.EndAt.Add(time.Hour)
	_, err = svc.Create(ctx, adjacent)
	assert.NoError(t, err)
}

func TestCreateCancelledBookingDoesNotConflict(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	now := time.Now()

	first, err := svc.Create(ctx, validInput(now))
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, first.ID, "cancelled")
	require.NoError(t, err)

	_, err = svc.Create(ctx, validInput(now))
	assert.NoError(t, err)
}

func TestUpdateStatusTransitions(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(time.Now()))
	require.NoError(t, err)

	// Walk the happy path.
	for _, target := range []string{"confirmed", "in_progress", "completed"} {
		updated, err := svc.UpdateStatus(ctx, created.ID, target)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatus(target), updated.Status)
	}

	// Terminal: completed cannot move back.
	_, err = svc.UpdateStatus(ctx, created.ID, "pending_payment")
	requireAppError(t, err, utils.CodeInvalidTransition)
}

func TestUpdateStatusPaidBackToPending(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(time.Now()))
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, created.ID, "paid") // legacy alias for confirmed
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, created.ID, "pending")
	requireAppError(t, err, utils.CodeInvalidTransition)
}

func TestUpdateStatusNoResurrection(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(time.Now()))
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, created.ID, "cancelled")
	require.NoError(t, err)

	for _, target := range []string{"pending_payment", "confirmed", "in_progress", "completed"} {
		_, err = svc.UpdateStatus(ctx, created.ID, target)
		requireAppError(t, err, utils.CodeInvalidTransition)
	}
}

func TestUpdateStatusUnknownBooking(t *testing.T) {
	svc := newTestService()
	_, err := svc.UpdateStatus(context.Background(), "nope", "confirmed")
	requireAppError(t, err, utils.CodeNotFound)
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	created, err := svc.Create(ctx, validInput(time.Now()))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, created.ID, "refunded")
	requireAppError(t, err, utils.CodeValidation)
}

func TestMarkPaidIdempotent(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(time.Now()))
	require.NoError(t, err)

	first, err := svc.MarkPaid(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, first.Status)

	second, err := svc.MarkPaid(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, second.Status)
}

func TestMarkPaidLeavesCancelledAlone(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(time.Now()))
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, created.ID, "cancelled")
	require.NoError(t, err)

	b, err := svc.MarkPaid(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, b.Status)
}

// staleRepo fails status writes with ErrStale until staleLeft reaches
// zero; a negative value means every write loses the race.
type staleRepo struct {
	bookingRepo.BookingRepository
	staleLeft int
}

func (r *staleRepo) UpdateStatusFrom(ctx context.Context, id string, from, to models.BookingStatus) (*models.Booking, error) {
	if r.staleLeft != 0 {
		r.staleLeft--
		return nil, bookingRepo.ErrStale
	}
	return r.BookingRepository.UpdateStatusFrom(ctx, id, from, to)
}

func TestMarkPaidRetriesStaleWrite(t *testing.T) {
	repo := &staleRepo{BookingRepository: bookingRepo.NewMemoryBookingRepo(), staleLeft: 1}
	svc := &DefaultBookingService{Repo: repo, Logger: zap.NewNop()}
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(time.Now()))
	require.NoError(t, err)

	updated, err := svc.MarkPaid(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, updated.Status)
}

func TestMarkPaidGivesUpAfterRepeatedStaleWrites(t *testing.T) {
	repo := &staleRepo{BookingRepository: bookingRepo.NewMemoryBookingRepo(), staleLeft: -1}
	svc := &DefaultBookingService{Repo: repo, Logger: zap.NewNop()}
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(time.Now()))
	require.NoError(t, err)

	_, err = svc.MarkPaid(ctx, created.ID)
	requireAppError(t, err, utils.CodeBookingConflict)
}

func requireAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	require.True(t, ok, "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
