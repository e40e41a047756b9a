// Package observation counts repeated device observations per time bucket.
//
// A short-lived suppression cache sits in front of the durable counter. The
// first observation of a bucket key is written through; repeats inside the
// suppression TTL are counted in memory and written as one delta once the
// entry expires, is evicted, or the counter is flushed.
package observation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	v1 "github.com/aevon-lab/devicescout/internal/api/v1"
	"github.com/aevon-lab/devicescout/internal/core/bucket"
	"github.com/aevon-lab/devicescout/internal/core/cache"
	coreerrors "github.com/aevon-lab/devicescout/internal/core/errors"
	"github.com/aevon-lab/devicescout/internal/core/fingerprint"
	"github.com/aevon-lab/devicescout/internal/core/keylock"
	"github.com/aevon-lab/devicescout/internal/core/storage"
)

// Outcomes reported to a Recorder.
const (
	OutcomeRecorded   = "recorded"
	OutcomeSuppressed = "suppressed"
	OutcomeFailed     = "failed"
	OutcomeFlushed    = "flushed"
	OutcomeLost       = "lost"
)

const (
	defaultSuppressionTTL  = 5 * time.Second
	defaultSuppressionSize = 10_000

	// evictionFlushTimeout bounds the write of an evicted entry, which
	// outlives the request that caused the eviction.
	evictionFlushTimeout = 5 * time.Second
)

// Recorder observes counter outcomes.
type Recorder interface {
	Observation(outcome string)
}

// Config holds the counter settings.
type Config struct {
	BucketWidthMinutes int
	SuppressionTTL     time.Duration
	SuppressionMaxSize int
}

// Result is the outcome of one registration.
type Result struct {
	Fingerprint string
	BucketStart int64
	Key         string
	Count       int64
	Suppressed  bool
}

// entry is only read or mutated while holding the lock for its key.
type entry struct {
	fingerprint string
	bucketStart int64
	count       int64
	pending     int64
}

// Counter records observations against the durable bucket store.
type Counter struct {
	store       storage.ObservationStore
	locks       *keylock.Table
	suppression *cache.TTLCache[string, *entry]
	width       int
	now         func() time.Time
	recorder    Recorder
}

// Option customizes a Counter.
type Option func(*Counter)

func WithClock(now func() time.Time) Option {
	return func(c *Counter) { c.now = now }
}

func WithRecorder(r Recorder) Option {
	return func(c *Counter) { c.recorder = r }
}

func NewCounter(store storage.ObservationStore, locks *keylock.Table, cfg Config, opts ...Option) *Counter {
	if store == nil {
		panic("observation: store must not be nil")
	}
	if locks == nil {
		locks = keylock.New()
	}
	if cfg.BucketWidthMinutes <= 0 {
		cfg.BucketWidthMinutes = 1
	}
	if cfg.SuppressionTTL < 0 {
		cfg.SuppressionTTL = defaultSuppressionTTL
	}
	if cfg.SuppressionMaxSize <= 0 {
		cfg.SuppressionMaxSize = defaultSuppressionSize
	}

	c := &Counter{
		store: store,
		locks: locks,
		width: cfg.BucketWidthMinutes,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.suppression = cache.NewTTLCache[string, *entry](cfg.SuppressionMaxSize, cfg.SuppressionTTL).WithClock(c.now)
	return c
}

// Register records obs under its identity fingerprint in the current bucket.
func (c *Counter) Register(ctx context.Context, obs *v1.Observation) (Result, error) {
	return c.RegisterFingerprint(ctx, fingerprint.DeviceIdentity(obs.Model, obs.ID))
}

// RegisterFingerprint records one observation of fp in the bucket containing now.
// A store failure returns a store_unavailable failure and leaves no
// suppression entry behind, so the next attempt writes through again.
func (c *Counter) RegisterFingerprint(ctx context.Context, fp string) (Result, error) {
	start := bucket.StartEpochMinutes(c.now(), c.width)
	key := bucket.Key(fp, start)

	var (
		res     Result
		evicted cache.Evicted[string, *entry]
		spilled bool
	)
	err := c.locks.Do(ctx, key, func(ctx context.Context) error {
		if e, ok := c.suppression.Get(key); ok {
			e.count++
			e.pending++
			res = Result{Fingerprint: fp, BucketStart: start, Key: key, Count: e.count, Suppressed: true}
			return nil
		}

		// An expired entry may still hold unwritten repeats; they ride along.
		var carry int64
		if leftover, expired, ok := c.suppression.Peek(key); ok && expired {
			carry = leftover.pending
		}

		count, err := c.store.IncrementBucket(ctx, key, fp, start, 1+carry)
		if err != nil {
			return err
		}

		evicted, spilled = c.suppression.Put(key, &entry{fingerprint: fp, bucketStart: start, count: count})
		res = Result{Fingerprint: fp, BucketStart: start, Key: key, Count: count}
		return nil
	})
	if err != nil {
		c.record(OutcomeFailed)
		slog.Warn("Failed to record observation", "bucket_key", key, "error", err)
		return Result{}, coreerrors.Transient("failed to record observation", err)
	}

	if res.Suppressed {
		c.record(OutcomeSuppressed)
	} else {
		c.record(OutcomeRecorded)
	}

	if spilled {
		c.flushEvicted(ctx, evicted)
	}
	return res, nil
}

// FlushExpired writes pending repeats of expired suppression entries and
// drops them. Entries whose write fails stay for the next flush.
func (c *Counter) FlushExpired(ctx context.Context) (int, error) {
	return c.flushKeys(ctx, c.suppression.ExpiredKeys(), true)
}

// Flush writes every pending repeat and empties the suppression cache.
func (c *Counter) Flush(ctx context.Context) (int, error) {
	return c.flushKeys(ctx, c.suppression.Keys(), false)
}

// Pending reports the number of resident suppression entries.
func (c *Counter) Pending() int {
	return c.suppression.Len()
}

func (c *Counter) flushKeys(ctx context.Context, keys []string, expiredOnly bool) (int, error) {
	var (
		flushed int
		errs    []error
	)
	for _, key := range keys {
		err := c.locks.Do(ctx, key, func(ctx context.Context) error {
			e, expired, ok := c.suppression.Peek(key)
			if !ok || (expiredOnly && !expired) {
				return nil
			}
			if e.pending > 0 {
				if _, err := c.store.IncrementBucket(ctx, key, e.fingerprint, e.bucketStart, e.pending); err != nil {
					return err
				}
				flushed++
				c.record(OutcomeFlushed)
				e.pending = 0
			}
			c.suppression.Remove(key)
			return nil
		})
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return flushed, errors.Join(errs...)
	}
	return flushed, nil
}

// flushEvicted writes the repeats of an entry pushed out by capacity. The
// entry is already gone from the cache, so the write is detached from ctx.
func (c *Counter) flushEvicted(ctx context.Context, ev cache.Evicted[string, *entry]) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), evictionFlushTimeout)
	defer cancel()

	err := c.locks.Do(ctx, ev.Key, func(ctx context.Context) error {
		if ev.Value.pending == 0 {
			return nil
		}
		if _, err := c.store.IncrementBucket(ctx, ev.Key, ev.Value.fingerprint, ev.Value.bucketStart, ev.Value.pending); err != nil {
			return err
		}
		c.record(OutcomeFlushed)
		ev.Value.pending = 0
		return nil
	})
	if err != nil {
		c.record(OutcomeLost)
		slog.Warn("Dropped suppressed observations of evicted bucket", "bucket_key", ev.Key, "pending", ev.Value.pending, "error", err)
	}
}

func (c *Counter) record(outcome string) {
	if c.recorder != nil {
		c.recorder.Observation(outcome)
	}
}
