package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	testRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/raditia/gerai/internal/pricing"
)

func setupCache(t *testing.T, c context.Context) *redis.Client {
	t.Helper()

	redisContainer, err := testRedis.Run(c, "redis:7.4.2-alpine3.21")
	require.NoError(t, err, "failed running redis container")
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(redisContainer); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	connStr, err := redisContainer.ConnectionString(c)
	require.NoError(t, err, "failed getting redis connection string")

	opt, err := redis.ParseURL(connStr)
	require.NoError(t, err, "failed parsing redis connection string")

	cache := redis.NewClient(opt)
	t.Cleanup(func() { cache.Close() })
	require.NoError(t, cache.Ping(c).Err(), "failed pinging redis")

	return cache
}

func TestRedisPersisterRoundTrip(t *testing.T) {
	c := context.Background()
	cache := setupCache(t, c)
	persister := NewRedisPersister(cache)

	lines := []Line{
		{
			ProductID: uuid.New(),
			Name:      "Kopi Susu",
			Price:     pricing.NewPrice(decimal.NewFromInt(18000)),
			Quantity:  2,
		},
		{
			ProductID: uuid.New(),
			Name:      "Roti Bakar",
			Price:     pricing.NewPrice(decimal.NewFromInt(12500)),
			Quantity:  1,
		},
	}
	require.NoError(t, persister.Save(c, "session-1", lines))

	loaded, err := persister.Load(c, "session-1")
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, lines[0].ProductID, loaded[0].ProductID)
	assert.Equal(t, "Kopi Susu", loaded[0].Name)
	assert.True(t, loaded[0].Price.Decimal().Equal(decimal.NewFromInt(18000)))
	assert.EqualValues(t, 2, loaded[0].Quantity)
}

func TestRedisPersisterSavesWithoutExpiry(t *testing.T) {
	c := context.Background()
	cache := setupCache(t, c)
	persister := NewRedisPersister(cache)

	lines := []Line{
		{
			ProductID: uuid.New(),
			Name:      "Kopi Susu",
			Price:     pricing.NewPrice(decimal.NewFromInt(18000)),
			Quantity:  1,
		},
	}
	require.NoError(t, persister.Save(c, "session-1", lines))

	ttl, err := cache.TTL(c, fmt.Sprintf(cartKey, "session-1")).Result()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(-1), ttl, "saved cart must not expire")
}

func TestRedisPersisterMissingSession(t *testing.T) {
	c := context.Background()
	cache := setupCache(t, c)
	persister := NewRedisPersister(cache)

	loaded, err := persister.Load(c, "never-saved")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisPersisterCorruptPayload(t *testing.T) {
	c := context.Background()
	cache := setupCache(t, c)
	persister := NewRedisPersister(cache)

	require.NoError(t, cache.Set(c, fmt.Sprintf(cartKey, "session-1"), "{not json", 0).Err())

	loaded, err := persister.Load(c, "session-1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
