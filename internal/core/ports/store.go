// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"time"

	"go.trai.ch/pagefresh/internal/core/domain"
)

// ContentStore is the key-value cache the generated pages live in.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ContentStore interface {
	// Get returns the value stored under key.
	// found is false, with a nil error, when the key is absent or expired.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Put stores value under key. A ttl of zero means no expiry.
	Put(ctx context.Context, key, value string, ttl time.Duration) error
}

// StoreFactory opens the ContentStore selected by the store configuration.
type StoreFactory interface {
	// Open connects to the configured backend. The returned func releases
	// its resources and is never nil when err is nil.
	Open(ctx context.Context, cfg domain.StoreConfig) (ContentStore, func(), error)
}
