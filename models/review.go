package models

import "time"

// Review is attached to exactly one completed booking. Reviews are
// immutable once created.
type Review struct {
	ID           string    `bson:"id" json:"id"`
	BookingID    string    `bson:"booking_id" json:"bookingId"`
	Rating       int       `bson:"rating" json:"rating"`
	Comment      string    `bson:"comment" json:"comment"`
	ReviewerName string    `bson:"reviewer_name" json:"reviewerName"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}

// ReviewInput carries the client-supplied fields for creating a review.
type ReviewInput struct {
	BookingID    string `json:"bookingId"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	ReviewerName string `json:"reviewerName"`
}
