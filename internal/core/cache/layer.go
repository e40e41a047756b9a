package cache

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Layer is the in-memory front tier of a Tiered cache.
type Layer[K comparable, V any] interface {
	Get(key K) (V, bool)
	// Put stores value for ttl. A non-positive ttl leaves the key absent.
	Put(key K, value V, ttl time.Duration)
	Invalidate(key K)
}

// Store is the durable second tier of a Tiered cache.
type Store[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, bool, error)
	Put(ctx context.Context, key K, value V, ttl time.Duration) error
	Invalidate(ctx context.Context, key K) error
}

// KeyString renders a cache key for layers that index by string.
func KeyString[K comparable](key K) string {
	switch k := any(key).(type) {
	case string:
		return k
	case fmt.Stringer:
		return k.String()
	default:
		return fmt.Sprint(key)
	}
}

// MemoryLayer is a Layer backed by go-cache. Expiry is checked on read; a
// janitor removes expired items every cleanupInterval.
type MemoryLayer[K comparable, V any] struct {
	c *gocache.Cache
}

func NewMemoryLayer[K comparable, V any](cleanupInterval time.Duration) *MemoryLayer[K, V] {
	return &MemoryLayer[K, V]{c: gocache.New(gocache.NoExpiration, cleanupInterval)}
}

func (m *MemoryLayer[K, V]) Get(key K) (V, bool) {
	var zero V
	v, ok := m.c.Get(KeyString(key))
	if !ok {
		return zero, false
	}
	typed, ok := v.(V)
	if !ok {
		return zero, false
	}
	return typed, true
}

func (m *MemoryLayer[K, V]) Put(key K, value V, ttl time.Duration) {
	// go-cache reads 0 as "default expiration", so zero and negative TTLs are
	// handled here instead.
	if ttl <= 0 {
		m.c.Delete(KeyString(key))
		return
	}
	m.c.Set(KeyString(key), value, ttl)
}

func (m *MemoryLayer[K, V]) Invalidate(key K) {
	m.c.Delete(KeyString(key))
}

func (m *MemoryLayer[K, V]) Len() int {
	return m.c.ItemCount()
}

// MemoryStore adapts a MemoryLayer to the Store interface. It is the durable
// tier used when no external cache is configured, and in tests.
type MemoryStore[K comparable, V any] struct {
	layer *MemoryLayer[K, V]
}

func NewMemoryStore[K comparable, V any](cleanupInterval time.Duration) *MemoryStore[K, V] {
	return &MemoryStore[K, V]{layer: NewMemoryLayer[K, V](cleanupInterval)}
}

func (s *MemoryStore[K, V]) Get(_ context.Context, key K) (V, bool, error) {
	v, ok := s.layer.Get(key)
	return v, ok, nil
}

func (s *MemoryStore[K, V]) Put(_ context.Context, key K, value V, ttl time.Duration) error {
	s.layer.Put(key, value, ttl)
	return nil
}

func (s *MemoryStore[K, V]) Invalidate(_ context.Context, key K) error {
	s.layer.Invalidate(key)
	return nil
}
