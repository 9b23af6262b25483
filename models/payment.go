package models

// CreateIntentInput is the request body for creating a payment intent.
type CreateIntentInput struct {
	BookingID string `json:"bookingId"`
}

// CreateIntentResult carries the processor's client secret back to the
// caller. The secret is the only thing the frontend needs to collect
// payment.
type CreateIntentResult struct {
	ClientSecret string `json:"clientSecret"`
}

// WebhookAck is the body returned to the payment processor for every
// authenticated webhook delivery. Warning is set when the event was
// acknowledged despite an internal failure (best-effort reconciliation).
type WebhookAck struct {
	Received bool   `json:"received"`
	Warning  string `json:"warning,omitempty"`
}
