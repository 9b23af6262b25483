package booking

import (
	"testing"

	"flupp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	cases := []struct {
		raw     string
		want    models.BookingStatus
		wantErr bool
	}{
		{"pending_payment", models.StatusPendingPayment, false},
		{"confirmed", models.StatusConfirmed, false},
		{"in_progress", models.StatusInProgress, false},
		{"completed", models.StatusCompleted, false},
		{"cancelled", models.StatusCancelled, false},
		// Legacy aliases.
		{"pending", models.StatusPendingPayment, false},
		{"paid", models.StatusConfirmed, false},
		{"refunded", "", true},
		{"", "", true},
		{"PENDING_PAYMENT", "", true},
	}
	for _, tc := range cases {
		got, err := ParseStatus(tc.raw)
		if tc.wantErr {
			assert.Error(t, err, tc.raw)
			continue
		}
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to models.BookingStatus }{
		{models.StatusPendingPayment, models.StatusConfirmed},
		{models.StatusPendingPayment, models.StatusCancelled},
		{models.StatusConfirmed, models.StatusInProgress},
		{models.StatusConfirmed, models.StatusCompleted},
		{models.StatusConfirmed, models.StatusCancelled},
		{models.StatusInProgress, models.StatusCompleted},
		{models.StatusInProgress, models.StatusCancelled},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct{ from, to models.BookingStatus }{
		// Paid states never move back to pending.
		{models.StatusConfirmed, models.StatusPendingPayment},
		{models.StatusInProgress, models.StatusPendingPayment},
		{models.StatusCompleted, models.StatusPendingPayment},
		// Terminal states have no exits.
		{models.StatusCompleted, models.StatusInProgress},
		{models.StatusCompleted, models.StatusCancelled},
		{models.StatusCancelled, models.StatusPendingPayment},
		{models.StatusCancelled, models.StatusConfirmed},
		// No skipping payment.
		{models.StatusPendingPayment, models.StatusInProgress},
		{models.StatusPendingPayment, models.StatusCompleted},
	}
	for _, tc := range denied {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	// Identity transitions are no-ops, not errors.
	for status := range transitions {
		assert.True(t, CanTransition(status, status), string(status))
	}
}

func TestIsPaid(t *testing.T) {
	assert.False(t, IsPaid(models.StatusPendingPayment))
	assert.True(t, IsPaid(models.StatusConfirmed))
	assert.True(t, IsPaid(models.StatusInProgress))
	assert.True(t, IsPaid(models.StatusCompleted))
	assert.False(t, IsPaid(models.StatusCancelled))
}
