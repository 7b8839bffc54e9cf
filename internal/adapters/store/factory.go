// Package store selects and opens the configured ContentStore backend.
package store

import (
	"context"
	"fmt"
	"sync"

	"go.trai.ch/pagefresh/internal/adapters/store/file"
	"go.trai.ch/pagefresh/internal/adapters/store/memory"
	"go.trai.ch/pagefresh/internal/adapters/store/postgres"
	"go.trai.ch/pagefresh/internal/adapters/store/redis"
	"go.trai.ch/pagefresh/internal/core/domain"
	"go.trai.ch/pagefresh/internal/core/ports"
	"go.trai.ch/zerr"
)

// Factory implements ports.StoreFactory.
type Factory struct {
	mu  sync.Mutex
	mem *memory.Store
}

// NewFactory creates a Factory. The memory backend is shared by every Open
// call on the same Factory so that serve mode keeps its cache between runs.
func NewFactory() *Factory {
	return &Factory{}
}

// Open connects to the backend named by cfg.Driver.
func (f *Factory) Open(ctx context.Context, cfg domain.StoreConfig) (ports.ContentStore, func(), error) {
	switch cfg.Driver {
	case domain.StoreDriverFile, "":
		s, err := file.NewStore(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil

	case domain.StoreDriverMemory:
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.mem == nil {
			f.mem = memory.NewStore()
		}
		return f.mem, func() {}, nil

	case domain.StoreDriverRedis:
		rdb, err := redis.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return redis.NewStore(rdb), func() { _ = rdb.Close() }, nil

	case domain.StoreDriverPostgres:
		pool, err := postgres.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		s, err := postgres.NewStore(pool, cfg.Table)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		if err := s.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return s, pool.Close, nil

	default:
		return nil, nil, zerr.With(zerr.Wrap(domain.ErrUnknownStoreDriver, fmt.Sprintf("driver %q", cfg.Driver)), "driver", cfg.Driver)
	}
}
