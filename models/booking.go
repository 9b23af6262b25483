package models

import "time"

// BookingStatus enumerates the lifecycle states of a booking.
type BookingStatus string

const (
	StatusPendingPayment BookingStatus = "pending_payment" // created, awaiting payment
	StatusConfirmed      BookingStatus = "confirmed"       // payment received
	StatusInProgress     BookingStatus = "in_progress"     // service underway
	StatusCompleted      BookingStatus = "completed"       // service finished, reviewable
	StatusCancelled      BookingStatus = "cancelled"       // terminal, never resurrected
)

// Booking represents a reservation of a pet-care service for a time interval.
// Bookings are never deleted; cancellation is a status change.
type Booking struct {
	ID              string        `bson:"id" json:"id"`
	PetName         string        `bson:"pet_name" json:"petName"`
	Species         string        `bson:"species" json:"species"`
	ServiceType     string        `bson:"service_type" json:"serviceType"`
	StartAt         time.Time     `bson:"start_at" json:"startAt"`
	EndAt           time.Time     `bson:"end_at" json:"endAt"`
	PriceCents      int64         `bson:"price_cents" json:"priceCents"`
	Currency        string        `bson:"currency" json:"currency"`
	CustomerEmail   string        `bson:"customer_email" json:"customerEmail"`
	Status          BookingStatus `bson:"status" json:"status"`
	PaymentIntentID string        `bson:"payment_intent_id,omitempty" json:"paymentIntentId,omitempty"`
	CreatedAt       time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time     `bson:"updated_at" json:"updatedAt"`
}

// BookingInput carries the client-supplied fields for creating a booking.
// Status, id and timestamps are always server-assigned.
type BookingInput struct {
	PetName       string    `json:"petName"`
	Species       string    `json:"species"`
	ServiceType   string    `json:"serviceType"`
	StartAt       time.Time `json:"startAt"`
	EndAt         time.Time `json:"endAt"`
	PriceCents    int64     `json:"priceCents"`
	CustomerEmail string    `json:"customerEmail"`
	Currency      string    `json:"currency"`
}
