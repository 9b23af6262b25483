// File: flupp/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flupp/config"
	"flupp/cron"
	"flupp/database"
	bookingRepo "flupp/database/repository/booking"
	reviewRepo "flupp/database/repository/review"
	"flupp/handlers"
	"flupp/middleware"
	"flupp/routes"
	"flupp/services/booking"
	"flupp/services/payment"
	"flupp/services/review"
	"flupp/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	if config.AppConfig.StripeKey == "" || config.AppConfig.StripeWebhookSecret == "" {
		logger.Sugar().Fatal("main: STRIPE_SECRET_KEY and STRIPE_WEBHOOK_SECRET must be set")
	}

	database.InitDB()
	utils.InitCache()
	utils.InitEventsCache()
	utils.StartHealthMonitor(
		time.Duration(config.AppConfig.HealthCheckSec)*time.Second,
		utils.GetCacheClient(),
		utils.GetEventsClient(),
		database.MongoClient,
	)

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories. Booking reads go through a short-TTL Redis cache.
	bookings := bookingRepo.NewCachedBookingRepo(
		bookingRepo.NewMongoBookingRepo(),
		bookingRepo.NewRedisBookingCache(utils.GetCacheClient(), logger),
	)
	reviews := reviewRepo.NewMongoReviewRepo()

	// services.
	bookingService := &booking.DefaultBookingService{
		Repo:    bookings,
		Logger:  logger,
		MaxDays: config.AppConfig.MaxBookingDays,
	}
	paymentService := &payment.DefaultPaymentService{
		Bookings: bookingService,
		Repo:     bookings,
		Gateway:  payment.NewStripeGateway(),
		Dedup:    payment.NewRedisEventDedup(utils.GetEventsClient()),
		Logger:   logger,
	}
	reviewService := &review.DefaultReviewService{
		Repo:     reviews,
		Bookings: bookingService,
		Logger:   logger,
	}

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	paymentHandler := handlers.NewPaymentHandler(paymentService, config.AppConfig.StripeWebhookSecret, logger)
	reviewHandler := handlers.NewReviewHandler(reviewService, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		CreateBooking:       bookingHandler.CreateBooking,
		GetBooking:          bookingHandler.GetBooking,
		UpdateBookingStatus: bookingHandler.UpdateBookingStatus,

		CreatePaymentIntent: paymentHandler.CreateIntent,
		PaymentWebhook:      paymentHandler.Webhook,

		CreateReview:          reviewHandler.CreateReview,
		ListReviewsForBooking: reviewHandler.ListReviewsForBooking,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background sweep for stale unpaid bookings.
	expiryWorker := cron.StartExpiryWorker(bookings, logger)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8787"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	expiryWorker.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
