package sweeper

import (
	"context"
	"time"

	"github.com/aevon-lab/devicescout/internal/core/bucket"
	"github.com/aevon-lab/devicescout/internal/core/storage"
)

// Task names.
const (
	TaskFlushSuppression = "flush_suppression"
	TaskPurgeBuckets     = "purge_buckets"
	TaskPurgeCache       = "purge_cache"
)

// SuppressionFlusher writes coalesced observation counts.
type SuppressionFlusher interface {
	FlushExpired(ctx context.Context) (int, error)
	Flush(ctx context.Context) (int, error)
}

// CachePurger deletes expired durable cache entries.
type CachePurger interface {
	PurgeExpiredCache(ctx context.Context) (int64, error)
}

// FlushSuppression writes expired suppression entries on each tick and every
// pending count on the final drain.
func FlushSuppression(f SuppressionFlusher) Task {
	return Task{
		Name: TaskFlushSuppression,
		Run: func(ctx context.Context) (int64, error) {
			n, err := f.FlushExpired(ctx)
			return int64(n), err
		},
		Final: func(ctx context.Context) (int64, error) {
			n, err := f.Flush(ctx)
			return int64(n), err
		},
	}
}

// PurgeBuckets deletes observation buckets that started more than retention ago.
func PurgeBuckets(store storage.ObservationStore, retention time.Duration, now func() time.Time) Task {
	if now == nil {
		now = time.Now
	}
	return Task{
		Name: TaskPurgeBuckets,
		Run: func(ctx context.Context) (int64, error) {
			cutoff := bucket.StartEpochMinutes(now().Add(-retention), 1)
			return store.PurgeBucketsBefore(ctx, cutoff)
		},
	}
}

// PurgeCache deletes expired entries of the durable cache table.
func PurgeCache(p CachePurger) Task {
	return Task{
		Name: TaskPurgeCache,
		Run:  p.PurgeExpiredCache,
	}
}
