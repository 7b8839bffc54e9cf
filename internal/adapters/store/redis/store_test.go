package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pagefresh/internal/adapters/store/redis"
	"go.trai.ch/pagefresh/internal/core/domain"
)

// unreachableClient points at a port nothing listens on.
func unreachableClient(t *testing.T) *goredis.Client {
	t.Helper()
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestStore_Unreachable(t *testing.T) {
	ctx := context.Background()
	store := redis.NewStore(unreachableClient(t))

	_, found, err := store.Get(ctx, "seo:industry:plumbers")
	require.Error(t, err)
	assert.False(t, found)
	assert.ErrorContains(t, err, domain.ErrStoreReadFailed.Error())

	err = store.Put(ctx, "seo:industry:plumbers", "v", time.Hour)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrStoreWriteFailed.Error())
}

func TestConnect_InvalidURL(t *testing.T) {
	_, err := redis.Connect(context.Background(), "not-a-url://")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrStoreConnectFailed.Error())
}

// TestStore_Integration runs against a real server when PAGEFRESH_TEST_REDIS_URL is set.
func TestStore_Integration(t *testing.T) {
	url := os.Getenv("PAGEFRESH_TEST_REDIS_URL")
	if url == "" {
		t.Skip("PAGEFRESH_TEST_REDIS_URL not set")
	}

	ctx := context.Background()
	rdb, err := redis.Connect(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	key := "pagefresh:test:" + t.Name()
	t.Cleanup(func() { _ = rdb.Del(context.Background(), key).Err() })

	store := redis.NewStore(rdb)

	_, found, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Put(ctx, key, "value", time.Minute))

	got, found, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "value", got)

	ttl, err := rdb.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
