// FILE: database/repository/booking/indexes.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the necessary indexes on the bookings and
// booking_locks collections.
func (r *mongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Unique index on booking ID
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Compound index backing the overlap query
		{
			Keys:    bson.D{{Key: "customer_email", Value: 1}, {Key: "start_at", Value: 1}, {Key: "end_at", Value: 1}},
			Options: options.Index().SetName("customer_interval_idx"),
		},
		// Index backing the expiry sweep
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "end_at", Value: 1}},
			Options: options.Index().SetName("status_end_idx"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}

	// TTL index so abandoned advisory locks expire on their own.
	lockTTL := mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0).SetName("lock_ttl_idx"),
	}
	if _, err := r.lockColl.Indexes().CreateOne(ctx, lockTTL); err != nil {
		return fmt.Errorf("failed to create booking lock TTL index: %w", err)
	}
	return nil
}
