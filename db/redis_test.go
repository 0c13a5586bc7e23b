package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/offerwall/db"
)

func useMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	db.RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		db.CloseRedis()
		db.RedisClient = nil
	})
	return mr
}

func TestRateLimit(t *testing.T) {
	ctx := context.Background()
	mr := useMiniredis(t)

	for i := 0; i < 3; i++ {
		allowed, err := db.RateLimit(ctx, "10.0.0.1", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d", i+1)
	}

	allowed, err := db.RateLimit(ctx, "10.0.0.1", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = db.RateLimit(ctx, "10.0.0.2", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed, "keys are limited independently")

	assert.True(t, mr.Exists("ratelimit:10.0.0.1"))
}

func TestRateLimitRedisDown(t *testing.T) {
	mr := useMiniredis(t)
	mr.Close()

	_, err := db.RateLimit(context.Background(), "10.0.0.1", 3, time.Minute)
	assert.Error(t, err)
}

func TestInitRedisUnreachableKeepsClient(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	viper.Set("redis.addr", addr)
	viper.Set("redis.dialTimeout", "200ms")
	t.Cleanup(func() {
		viper.Set("redis.addr", nil)
		viper.Set("redis.dialTimeout", nil)
		db.CloseRedis()
		db.RedisClient = nil
	})

	err := db.InitRedis()
	assert.Error(t, err)
	require.NotNil(t, db.RedisClient, "the client reconnects once Redis is back")

	_, err = db.RateLimit(context.Background(), "10.0.0.1", 3, time.Minute)
	assert.Error(t, err)
}

func TestRateLimitWithoutClient(t *testing.T) {
	db.RedisClient = nil

	_, err := db.RateLimit(context.Background(), "10.0.0.1", 3, time.Minute)
	assert.Error(t, err)
}
