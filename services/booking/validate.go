package booking

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"flupp/models"
)

// Validation bounds for booking input.
const (
	MaxPetNameLen   = 50
	MaxEmailLen     = 100
	MinPriceCents   = 50
	MaxPriceCents   = 100_000_000
	DefaultMaxDays  = 365
	DefaultCurrency = "GBP"
)

var allowedSpecies = map[string]bool{
	"dog": true, "cat": true, "rabbit": true, "bird": true, "other": true,
}

var allowedServiceTypes = map[string]bool{
	"boarding": true, "grooming": true, "daycare": true, "training": true, "walking": true,
}

var allowedCurrencies = map[string]bool{
	"GBP": true, "USD": true, "EUR": true,
}

// bookingRule is a single field-level validation check. Rules run in
// order and the first failure wins, so clients always get one
// descriptive message.
type bookingRule struct {
	field string
	check func(in *models.BookingInput, now time.Time, maxDays int) bool
	msg   string
}

var bookingRules = []bookingRule{
	{"petName", func(in *models.BookingInput, _ time.Time, _ int) bool {
		return strings.TrimSpace(in.PetName) != ""
	}, "Pet name is required"},
	{"petName", func(in *models.BookingInput, _ time.Time, _ int) bool {
		return utf8.RuneCountInString(in.PetName) <= MaxPetNameLen
	}, "Pet name too long"},
	{"species", func(in *models.BookingInput, _ time.Time, _ int) bool {
		return allowedSpecies[in.Species]
	}, "Invalid species"},
	{"serviceType", func(in *models.BookingInput, _ time.Time, _ int) bool {
		return allowedServiceTypes[in.ServiceType]
	}, "Invalid service type"},
	{"startAt", func(in *models.BookingInput, _ time.Time, _ int) bool {
		return !in.StartAt.IsZero() && !in.EndAt.IsZero()
	}, "Start and end dates are required"},
	{"startAt", func(in *models.BookingInput, now time.Time, _ int) bool {
		return in.StartAt.After(now)
	}, "Start date must be in the future"},
	{"endAt", func(in *models.BookingInput, _ time.Time, _ int) bool {
		return in.EndAt.After(in.StartAt)
	}, "End date must be after start date"},
	{"endAt", func(in *models.BookingInput, _ time.Time, maxDays int) bool {
		return in.EndAt.Sub(in.StartAt) <= time.Duration(maxDays)*24*time.Hour
	}, "Booking duration cannot exceed 1 year"},
	{"priceCents", func(in *models.BookingInput, _ time.Time, _ int) bool {
		return in.PriceCents >= MinPriceCents
	}, fmt.Sprintf("Minimum price is %d pence", MinPriceCents)},
	{"priceCents", func(in *models.BookingInput, _ time.Time, _ int) bool {
		return in.PriceCents <= MaxPriceCents
	}, "Price too high"},
	{"customerEmail", func(in *models.BookingInput, _ time.Time, _ int) bool {
		if in.CustomerEmail == "" || len(in.CustomerEmail) > MaxEmailLen {
			return false
		}
		addr, err := mail.ParseAddress(in.CustomerEmail)
		return err == nil && addr.Address == in.CustomerEmail
	}, "Invalid email format"},
	{"currency", func(in *models.BookingInput, _ time.Time, _ int) bool {
		return allowedCurrencies[in.Currency]
	}, "Unsupported currency"},
}

// ValidateBookingInput normalizes and validates a booking request. The
// input is normalized in place (currency uppercased and defaulted) and
// the first failing rule's message is returned.
func ValidateBookingInput(in *models.BookingInput, now time.Time, maxDays int) error {
	in.PetName = strings.TrimSpace(in.PetName)
	in.Species = strings.ToLower(strings.TrimSpace(in.Species))
	in.ServiceType = strings.ToLower(strings.TrimSpace(in.ServiceType))
	in.CustomerEmail = strings.TrimSpace(in.CustomerEmail)
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if in.Currency == "" {
		in.Currency = DefaultCurrency
	}
	if len(in.Currency) != 3 {
		return fmt.Errorf("Currency must be 3 characters")
	}
	if maxDays <= 0 {
		maxDays = DefaultMaxDays
	}

	for _, rule := range bookingRules {
		if !rule.check(in, now, maxDays) {
			return fmt.Errorf("%s", rule.msg)
		}
	}
	return nil
}
