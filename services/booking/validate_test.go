package booking

import (
	"strings"
	"testing"
	"time"

	"flupp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput(now time.Time) models.BookingInput {
	return models.BookingInput{
		PetName:       "Max",
		Species:       "dog",
		ServiceType:   "grooming",
		StartAt:       now.Add(1 * time.Hour),
		EndAt:         now.Add(2 * time.Hour),
		PriceCents:    5000,
		CustomerEmail: "a@b.com",
		Currency:      "GBP",
	}
}

func TestValidateBookingInput(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name    string
		mutate  func(in *models.BookingInput)
		wantMsg string
	}{
		{"valid", func(in *models.BookingInput) {}, ""},
		{"empty pet name", func(in *models.BookingInput) { in.PetName = "  " }, "Pet name is required"},
		{"pet name too long", func(in *models.BookingInput) { in.PetName = strings.Repeat("x", 51) }, "Pet name too long"},
		{"unknown species", func(in *models.BookingInput) { in.Species = "dragon" }, "Invalid species"},
		{"unknown service", func(in *models.BookingInput) { in.ServiceType = "surfing" }, "Invalid service type"},
		{"start in the past", func(in *models.BookingInput) {
			in.StartAt = now.Add(-1 * time.Hour)
		}, "Start date must be in the future"},
		{"end before start", func(in *models.BookingInput) {
			in.EndAt = in.StartAt.Add(-30 * time.Minute)
		}, "End date must be after start date"},
		{"end equals start", func(in *models.BookingInput) {
			in.EndAt = in.StartAt
		}, "End date must be after start date"},
		{"span over a year", func(in *models.BookingInput) {
			in.EndAt = in.StartAt.Add(366 * 24 * time.Hour)
		}, "Booking duration cannot exceed 1 year"},
		{"price below minimum", func(in *models.BookingInput) { in.PriceCents = 10 }, "Minimum price is 50 pence"},
		{"price zero", func(in *models.BookingInput) { in.PriceCents = 0 }, "Minimum price is 50 pence"},
		{"price too high", func(in *models.BookingInput) { in.PriceCents = 100_000_001 }, "Price too high"},
		{"bad email", func(in *models.BookingInput) { in.CustomerEmail = "not-an-email" }, "Invalid email format"},
		{"email too long", func(in *models.BookingInput) {
			in.CustomerEmail = strings.Repeat("a", 95) + "@b.com"
		}, "Invalid email format"},
		{"unsupported currency", func(in *models.BookingInput) { in.Currency = "JPY" }, "Unsupported currency"},
		{"currency wrong length", func(in *models.BookingInput) { in.Currency = "POUNDS" }, "Currency must be 3 characters"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput(now)
			tc.mutate(&in)
			err := ValidateBookingInput(&in, now, 0)
			if tc.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tc.wantMsg, err.Error())
		})
	}
}

func TestValidateBookingInputCountsRunes(t *testing.T) {
	now := time.Now()

	// 50 multi-byte characters are within the limit even though the
	// byte length is double that.
	in := validInput(now)
	in.PetName = strings.Repeat("ü", MaxPetNameLen)
	require.NoError(t, ValidateBookingInput(&in, now, 0))

	in = validInput(now)
	in.PetName = strings.Repeat("ü", MaxPetNameLen+1)
	err := ValidateBookingInput(&in, now, 0)
	require.Error(t, err)
	assert.Equal(t, "Pet name too long", err.Error())
}

func TestValidateBookingInputNormalizes(t *testing.T) {
	now := time.Now()
	in := validInput(now)
	in.PetName = "  Max "
	in.Species = " Dog"
	in.ServiceType = "GROOMING"
	in.Currency = "gbp"

	require.NoError(t, ValidateBookingInput(&in, now, 0))
	assert.Equal(t, "Max", in.PetName)
	assert.Equal(t, "dog", in.Species)
	assert.Equal(t, "grooming", in.ServiceType)
	assert.Equal(t, "GBP", in.Currency)
}

func TestValidateBookingInputDefaultsCurrency(t *testing.T) {
	now := time.Now()
	in := validInput(now)
	in.Currency = ""

	require.NoError(t, ValidateBookingInput(&in, now, 0))
	assert.Equal(t, "GBP", in.Currency)
}
