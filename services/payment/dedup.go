package payment

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// EventDedup records processed webhook event ids so replays of the same
// confirmation never double-apply side effects.
type EventDedup interface {
	// MarkProcessed records the event id and reports whether this is
	// the first time it has been seen.
	MarkProcessed(ctx context.Context, eventID string) (bool, error)
}

// redisEventDedup stores processed ids in Redis with a TTL. The
// processor only retries for a bounded window, so records can expire.
type redisEventDedup struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisEventDedup returns an EventDedup backed by Redis.
func NewRedisEventDedup(client *redis.Client) EventDedup {
	return &redisEventDedup{client: client, ttl: 72 * time.Hour}
}

func (d *redisEventDedup) MarkProcessed(ctx context.Context, eventID string) (bool, error) {
	return d.client.SetNX(ctx, "event:"+eventID, 1, d.ttl).Result()
}

// memoryEventDedup is the in-memory backing for tests.
type memoryEventDedup struct {
	mu   sync.Mutex
	seen map[string]bool
}

// NewMemoryEventDedup returns an in-memory EventDedup.
func NewMemoryEventDedup() EventDedup {
	return &memoryEventDedup{seen: make(map[string]bool)}
}

func (d *memoryEventDedup) MarkProcessed(ctx context.Context, eventID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.seen[eventID] {
		return false, nil
	}
	d.seen[eventID] = true
	return true, nil
}
