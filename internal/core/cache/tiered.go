// Package cache provides the two-tier read-through cache and the bounded
// TTL cache used for write suppression.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"
)

// Result sources reported to a Recorder.
const (
	SourceL1       = "l1"
	SourceL2       = "l2"
	SourceLoader   = "loader"
	SourceFallback = "fallback"
	SourceMiss     = "miss"
)

// LoadFunc produces a value for key. ok=false means "no value", not an error.
type LoadFunc[K comparable, V any] func(ctx context.Context, key K) (value V, ok bool, err error)

// Eligible is implemented by keys that may only be handed to the loader when
// they carry enough information.
type Eligible interface {
	HasMinimumLoadingCriteria() bool
}

// Recorder observes where each Get was answered from.
type Recorder interface {
	CacheResult(cache, source string)
}

// Options configures a Tiered cache. Every field is optional.
type Options[K comparable, V any] struct {
	Name     string
	L1       Layer[K, V]
	L2       Store[K, V]
	Loader   LoadFunc[K, V]
	Fallback LoadFunc[K, V]
	L1TTL    time.Duration
	L2TTL    time.Duration
	Recorder Recorder
}

// Tiered is a read-through cache with an in-memory front tier and a durable
// second tier. Get treats loader and fallback failures as "no value"; Load
// reports them.
type Tiered[K comparable, V any] struct {
	opts  Options[K, V]
	group singleflight.Group
}

func NewTiered[K comparable, V any](opts Options[K, V]) *Tiered[K, V] {
	if opts.Name == "" {
		opts.Name = "cache"
	}
	return &Tiered[K, V]{opts: opts}
}

type produced[V any] struct {
	value  V
	source string
	err    error
}

// Get resolves key in order: L1, L2 (backfilling L1), loader when the key is
// eligible, fallback. Produced values are written to both tiers.
func (t *Tiered[K, V]) Get(ctx context.Context, key K) (V, bool) {
	v, ok, _ := t.Load(ctx, key)
	return v, ok
}

// Load is Get that also reports why nothing was produced. err is the last
// producer failure and is nil for a clean miss; it is never set with ok.
func (t *Tiered[K, V]) Load(ctx context.Context, key K) (V, bool, error) {
	var zero V

	if t.opts.L1 != nil {
		if v, ok := t.opts.L1.Get(key); ok {
			t.record(SourceL1)
			return v, true, nil
		}
	}

	if t.opts.L2 != nil {
		v, ok, err := t.opts.L2.Get(ctx, key)
		if err != nil {
			slog.Warn("Durable cache read failed", "cache", t.opts.Name, "key", KeyString(key), "error", err)
		} else if ok {
			if t.opts.L1 != nil {
				t.opts.L1.Put(key, v, t.opts.L1TTL)
			}
			t.record(SourceL2)
			return v, true, nil
		}
	}

	if t.opts.Loader == nil && t.opts.Fallback == nil {
		t.record(SourceMiss)
		return zero, false, nil
	}

	res, _, _ := t.group.Do(KeyString(key), func() (interface{}, error) {
		return t.produce(ctx, key), nil
	})
	p, ok := res.(*produced[V])
	if !ok || p == nil {
		t.record(SourceMiss)
		return zero, false, nil
	}
	if p.source == "" {
		t.record(SourceMiss)
		return zero, false, p.err
	}
	t.record(p.source)
	return p.value, true, nil
}

// Peek returns key from the in-memory tier only. It never reaches the
// durable tier or a producer and is not recorded.
func (t *Tiered[K, V]) Peek(key K) (V, bool) {
	if t.opts.L1 == nil {
		var zero V
		return zero, false
	}
	return t.opts.L1.Get(key)
}

// produce runs the loader then the fallback and writes a produced value through.
func (t *Tiered[K, V]) produce(ctx context.Context, key K) *produced[V] {
	var failure error
	if t.opts.Loader != nil && eligible(key) {
		v, ok, err := t.call(ctx, key, t.opts.Loader, SourceLoader)
		if ok {
			t.write(ctx, key, v, t.opts.L1TTL, t.opts.L2TTL)
			return &produced[V]{value: v, source: SourceLoader}
		}
		failure = err
	}
	if t.opts.Fallback != nil {
		v, ok, err := t.call(ctx, key, t.opts.Fallback, SourceFallback)
		if ok {
			t.write(ctx, key, v, t.opts.L1TTL, t.opts.L2TTL)
			return &produced[V]{value: v, source: SourceFallback}
		}
		if err != nil {
			failure = err
		}
	}
	return &produced[V]{err: failure}
}

func (t *Tiered[K, V]) call(ctx context.Context, key K, fn LoadFunc[K, V], source string) (v V, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("Cache producer panicked", "cache", t.opts.Name, "source", source, "key", KeyString(key), "panic", r)
			var zero V
			v, ok, err = zero, false, fmt.Errorf("%s panicked: %v", source, r)
		}
	}()

	v, ok, err = fn(ctx, key)
	if err != nil {
		slog.Debug("Cache producer failed", "cache", t.opts.Name, "source", source, "key", KeyString(key), "error", err)
		var zero V
		return zero, false, err
	}
	return v, ok, nil
}

// Put writes value through both tiers using the configured TTLs.
func (t *Tiered[K, V]) Put(ctx context.Context, key K, value V) {
	t.write(ctx, key, value, t.opts.L1TTL, t.opts.L2TTL)
}

// PutWithTTL writes value through both tiers with one TTL for each.
func (t *Tiered[K, V]) PutWithTTL(ctx context.Context, key K, value V, ttl time.Duration) {
	t.write(ctx, key, value, ttl, ttl)
}

// Invalidate removes key from both tiers.
func (t *Tiered[K, V]) Invalidate(ctx context.Context, key K) {
	if t.opts.L1 != nil {
		t.opts.L1.Invalidate(key)
	}
	if t.opts.L2 != nil {
		if err := t.opts.L2.Invalidate(ctx, key); err != nil {
			slog.Warn("Durable cache invalidate failed", "cache", t.opts.Name, "key", KeyString(key), "error", err)
		}
	}
}

func (t *Tiered[K, V]) write(ctx context.Context, key K, value V, l1TTL, l2TTL time.Duration) {
	if t.opts.L1 != nil {
		t.opts.L1.Put(key, value, l1TTL)
	}
	if t.opts.L2 != nil {
		if err := t.opts.L2.Put(ctx, key, value, l2TTL); err != nil {
			slog.Warn("Durable cache write failed", "cache", t.opts.Name, "key", KeyString(key), "error", err)
		}
	}
}

func (t *Tiered[K, V]) record(source string) {
	if t.opts.Recorder != nil {
		t.opts.Recorder.CacheResult(t.opts.Name, source)
	}
}

func eligible[K comparable](key K) bool {
	if e, ok := any(key).(Eligible); ok {
		return e.HasMinimumLoadingCriteria()
	}
	return true
}
