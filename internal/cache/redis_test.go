package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/session-gate/internal/config"
)

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	return cache, mr
}

func TestSetAndGet(t *testing.T) {
	cache, _ := setupTestCache(t)

	err := cache.Set(context.Background(), "session:abc", "user-uid-1", time.Minute)
	require.NoError(t, err)

	val, found, err := cache.Get(context.Background(), "session:abc")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "user-uid-1", val)
}

func TestGetNotFound(t *testing.T) {
	cache, _ := setupTestCache(t)

	_, found, err := cache.Get(context.Background(), "no_such_key")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetExpired(t *testing.T) {
	cache, mr := setupTestCache(t)

	err := cache.Set(context.Background(), "session:abc", "user-uid-1", time.Second)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	_, found, err := cache.Get(context.Background(), "session:abc")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDel(t *testing.T) {
	cache, _ := setupTestCache(t)

	err := cache.Set(context.Background(), "session:abc", "user-uid-1", time.Minute)
	require.NoError(t, err)

	require.NoError(t, cache.Del(context.Background(), "session:abc"))

	_, found, err := cache.Get(context.Background(), "session:abc")
	require.NoError(t, err)
	assert.False(t, found)

	// повторное удаление не должно быть ошибкой
	require.NoError(t, cache.Del(context.Background(), "session:abc"))
}

func TestGetAfterServerStop(t *testing.T) {
	cache, mr := setupTestCache(t)

	mr.Close()

	_, _, err := cache.Get(context.Background(), "session:abc")
	assert.Error(t, err)
}
