package refresher

import (
	"context"
	"fmt"
	"time"

	"go.trai.ch/pagefresh/internal/core/domain"
	"go.trai.ch/pagefresh/internal/core/ports"
	"go.trai.ch/zerr"
)

// IsFresh reports whether the cached record for task is younger than threshold.
//
// A missing record, a store read error and a malformed record all count as
// stale. In the latter two cases the returned error explains why, so the
// caller can log it; it never blocks a refresh.
func IsFresh(
	ctx context.Context,
	store ports.ContentStore,
	task domain.Task,
	threshold time.Duration,
	now time.Time,
) (bool, error) {
	key := task.CacheKey()

	value, found, err := store.Get(ctx, key)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, fmt.Sprintf("%s %s", domain.ErrStoreReadFailed.Error(), key)), "key", key)
	}
	if !found {
		return false, nil
	}

	record, err := domain.DecodeCacheRecord(value)
	if err != nil {
		return false, zerr.With(err, "key", key)
	}

	return record.Age(now) < threshold, nil
}
