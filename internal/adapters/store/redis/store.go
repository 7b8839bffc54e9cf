// Package redis implements a ContentStore on Redis string keys with native TTL.
package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.trai.ch/pagefresh/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.ContentStore on a Redis client.
type Store struct {
	rdb goredis.Cmdable
}

// NewStore wraps an existing client.
func NewStore(rdb goredis.Cmdable) *Store {
	return &Store{rdb: rdb}
}

// Connect parses url, opens a client and pings it.
func Connect(ctx context.Context, url string) (*goredis.Client, error) {
	opt, err := goredis.ParseURL(url)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreConnectFailed.Error()), "driver", domain.StoreDriverRedis)
	}

	rdb := goredis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreConnectFailed.Error()), "addr", opt.Addr)
	}
	return rdb, nil
}

// Get retrieves the value stored under key. Expiry is handled by Redis.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", false, nil
		}
		return "", false, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "key", key)
	}
	return val, true, nil
}

// Put stores value under key. A zero ttl stores the key without expiry.
func (s *Store) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "key", key)
	}
	return nil
}
