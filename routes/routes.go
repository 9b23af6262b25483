package routes

import (
	"time"

	"flupp/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint onto the router.
//
// The payment webhook is registered directly on the engine, outside any
// group that might gain body-touching middleware: its handler must see
// the raw request bytes to verify the processor signature.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Authorization", "Stripe-Signature"},
		MaxAge:          12 * time.Hour,
	}))

	r.POST("/api/payments/webhook", hb.PaymentWebhook)

	bookings := r.Group("/api/bookings")
	{
		bookings.POST("", hb.CreateBooking)
		bookings.GET("/:id", hb.GetBooking)
		bookings.PATCH("/:id/status", hb.UpdateBookingStatus)
	}

	payments := r.Group("/api/payments")
	{
		payments.POST("/create-intent", hb.CreatePaymentIntent)
	}

	reviews := r.Group("/api/reviews")
	{
		reviews.POST("", hb.CreateReview)
		reviews.GET("/for-booking/:id", hb.ListReviewsForBooking)
	}

	r.GET("/health", handlers.Health)
}
