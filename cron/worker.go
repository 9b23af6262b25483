package cron

import (
	"context"
	"time"

	"flupp/config"
	bookingRepo "flupp/database/repository/booking"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartExpiryWorker runs a periodic sweep that cancels bookings still
// awaiting payment after their end time has passed. Cancellation keeps
// the interval free for other customers; the record itself is never
// deleted. Returns the scheduler so main can stop it on shutdown.
func StartExpiryWorker(repo bookingRepo.BookingRepository, logger *zap.Logger) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc(config.AppConfig.ExpirySweepSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		cancelled, err := repo.CancelExpiredPending(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("expiry sweep failed", zap.Error(err))
			return
		}
		if cancelled > 0 {
			logger.Info("expired unpaid bookings cancelled", zap.Int64("count", cancelled))
		}
	})
	if err != nil {
		logger.Error("invalid expiry sweep schedule, worker disabled",
			zap.String("spec", config.AppConfig.ExpirySweepSpec), zap.Error(err))
		return c
	}

	c.Start()
	logger.Info("expiry worker started", zap.String("schedule", config.AppConfig.ExpirySweepSpec))
	return c
}
