package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HealthStatus is the snapshot of the service's backing stores: the
// booking database, the read cache and the webhook event-dedup store.
type HealthStatus struct {
	Mongo       bool      `json:"mongo"`
	CacheRedis  bool      `json:"cacheRedis"`
	EventsRedis bool      `json:"eventsRedis"`
	CheckedAt   time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor probes the backing stores on the given interval
// and keeps the in-memory snapshot current, so /health never blocks on
// a slow dependency. An initial probe runs before the first tick.
func StartHealthMonitor(interval time.Duration, cache, events *redis.Client, mongoClient *mongo.Client) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		update := func() {
			status := probeDependencies(context.Background(), cache, events, mongoClient)
			healthMu.Lock()
			currentHealth = status
			healthMu.Unlock()
		}

		update()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			update()
		}
	}()
}

// probeDependencies pings each store with a bounded deadline. Failures
// are logged here; the handler only ever sees the boolean snapshot.
func probeDependencies(ctx context.Context, cache, events *redis.Client, mongoClient *mongo.Client) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	logger := GetLogger()

	status := HealthStatus{CheckedAt: time.Now().UTC()}

	if err := cache.Ping(ctx).Err(); err != nil {
		logger.Warn("health check failed", zap.String("dependency", "cacheRedis"), zap.Error(err))
	} else {
		status.CacheRedis = true
	}
	if err := events.Ping(ctx).Err(); err != nil {
		logger.Warn("health check failed", zap.String("dependency", "eventsRedis"), zap.Error(err))
	} else {
		status.EventsRedis = true
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		logger.Warn("health check failed", zap.String("dependency", "mongo"), zap.Error(err))
	} else {
		status.Mongo = true
	}
	return status
}
