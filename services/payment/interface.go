package payment

import (
	"context"

	"flupp/models"

	stripe "github.com/stripe/stripe-go/v76"
)

// PaymentService bridges bookings to the external payment processor.
type PaymentService interface {
	// CreateIntent opens (or reuses) a payment intent for a booking and
	// returns the client secret the frontend needs to collect payment.
	CreateIntent(ctx context.Context, bookingID string) (*models.CreateIntentResult, error)
	// HandleConfirmation reconciles an authenticated processor event
	// into booking state. It never returns an error: failures are
	// logged and acknowledged so the processor does not retry forever.
	HandleConfirmation(ctx context.Context, event stripe.Event) models.WebhookAck
}
