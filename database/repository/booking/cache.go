package bookingRepo

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"flupp/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// bookingCacheTTL bounds staleness for writes that bypass per-id
// invalidation (the expiry sweep updates documents in bulk).
const bookingCacheTTL = 30 * time.Second

// BookingCache is a best-effort store for bookings by id. Misses and
// backend failures both read as a miss; callers always fall back to
// the repository.
type BookingCache interface {
	Get(ctx context.Context, id string) (*models.Booking, bool)
	Set(ctx context.Context, booking *models.Booking)
	Invalidate(ctx context.Context, id string)
}

type redisBookingCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisBookingCache returns a BookingCache backed by Redis.
func NewRedisBookingCache(client *redis.Client, logger *zap.Logger) BookingCache {
	return &redisBookingCache{client: client, logger: logger}
}

func bookingCacheKey(id string) string { return "booking:" + id }

func (c *redisBookingCache) Get(ctx context.Context, id string) (*models.Booking, bool) {
	payload, err := c.client.Get(ctx, bookingCacheKey(id)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Debug("booking cache read failed", zap.String("bookingId", id), zap.Error(err))
		return nil, false
	}
	var booking models.Booking
	if err := json.Unmarshal([]byte(payload), &booking); err != nil {
		c.logger.Warn("corrupt booking cache entry", zap.String("bookingId", id), zap.Error(err))
		return nil, false
	}
	return &booking, true
}

func (c *redisBookingCache) Set(ctx context.Context, booking *models.Booking) {
	payload, err := json.Marshal(booking)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, bookingCacheKey(booking.ID), payload, bookingCacheTTL).Err(); err != nil {
		c.logger.Debug("booking cache write failed", zap.String("bookingId", booking.ID), zap.Error(err))
	}
}

func (c *redisBookingCache) Invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, bookingCacheKey(id)).Err(); err != nil {
		c.logger.Debug("booking cache invalidation failed", zap.String("bookingId", id), zap.Error(err))
	}
}

// memoryBookingCache is the in-memory backing for tests and local
// development without Redis.
type memoryBookingCache struct {
	mu      sync.Mutex
	entries map[string]models.Booking
}

// NewMemoryBookingCache returns an in-memory BookingCache.
func NewMemoryBookingCache() BookingCache {
	return &memoryBookingCache{entries: make(map[string]models.Booking)}
}

func (c *memoryBookingCache) Get(ctx context.Context, id string) (*models.Booking, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	booking, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	return &booking, true
}

func (c *memoryBookingCache) Set(ctx context.Context, booking *models.Booking) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[booking.ID] = *booking
}

func (c *memoryBookingCache) Invalidate(ctx context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}

// cachedBookingRepo layers a read-through cache over a repository.
// Writes go to the backing store first; successful ones refresh or
// drop the cached copy so a read after a write is never stale.
type cachedBookingRepo struct {
	inner BookingRepository
	cache BookingCache
}

// NewCachedBookingRepo wraps a repository with a BookingCache.
func NewCachedBookingRepo(inner BookingRepository, cache BookingCache) BookingRepository {
	return &cachedBookingRepo{inner: inner, cache: cache}
}

func (r *cachedBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	if err := r.inner.Create(ctx, booking); err != nil {
		return err
	}
	r.cache.Set(ctx, booking)
	return nil
}

func (r *cachedBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	if booking, ok := r.cache.Get(ctx, id); ok {
		return booking, nil
	}
	booking, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.Set(ctx, booking)
	return booking, nil
}

func (r *cachedBookingRepo) UpdateStatusFrom(ctx context.Context, id string, from, to models.BookingStatus) (*models.Booking, error) {
	updated, err := r.inner.UpdateStatusFrom(ctx, id, from, to)
	if err != nil {
		// On ErrStale another writer won; drop our copy so the
		// caller's re-read sees the winner.
		r.cache.Invalidate(ctx, id)
		return nil, err
	}
	r.cache.Set(ctx, updated)
	return updated, nil
}

func (r *cachedBookingRepo) SetPaymentIntent(ctx context.Context, id, intentID string) error {
	if err := r.inner.SetPaymentIntent(ctx, id, intentID); err != nil {
		return err
	}
	r.cache.Invalidate(ctx, id)
	return nil
}

func (r *cachedBookingRepo) CancelExpiredPending(ctx context.Context, now time.Time) (int64, error) {
	// Swept documents are not individually invalidated; the cache TTL
	// bounds how long a cancelled hold can still read as pending.
	return r.inner.CancelExpiredPending(ctx, now)
}
