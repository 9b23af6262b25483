package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle collects every route handler the router needs. It is
// assembled once in main and passed to routes.RegisterRoutes.
type HandlerBundle struct {
	// Booking endpoints.
	CreateBooking       gin.HandlerFunc
	GetBooking          gin.HandlerFunc
	UpdateBookingStatus gin.HandlerFunc

	// Payment endpoints.
	CreatePaymentIntent gin.HandlerFunc
	PaymentWebhook      gin.HandlerFunc

	// Review endpoints.
	CreateReview          gin.HandlerFunc
	ListReviewsForBooking gin.HandlerFunc
}
