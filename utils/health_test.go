package utils

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestProbeDependenciesUnreachable(t *testing.T) {
	// Nothing listens on port 1; every probe must fail cleanly and the
	// snapshot must still carry a timestamp.
	cache := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	events := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	mongoClient, err := mongo.Connect(context.Background(),
		options.Client().
			ApplyURI("mongodb://127.0.0.1:1").
			SetServerSelectionTimeout(200*time.Millisecond))
	require.NoError(t, err)

	status := probeDependencies(context.Background(), cache, events, mongoClient)
	assert.False(t, status.Mongo)
	assert.False(t, status.CacheRedis)
	assert.False(t, status.EventsRedis)
	assert.False(t, status.CheckedAt.IsZero())
}
