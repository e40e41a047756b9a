package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aevon-lab/devicescout/internal/core/cache"
)

// CacheStore is a durable cache tier kept in the cache_entries table.
// Values are stored as JSON under a namespace.
type CacheStore[K comparable, V any] struct {
	db        *sql.DB
	namespace string
	now       func() time.Time
}

var _ cache.Store[string, int] = (*CacheStore[string, int])(nil)

func NewCacheStore[K comparable, V any](db *sql.DB, namespace string) *CacheStore[K, V] {
	return &CacheStore[K, V]{db: db, namespace: namespace, now: func() time.Time { return time.Now().UTC() }}
}

func (s *CacheStore[K, V]) Get(ctx context.Context, key K) (V, bool, error) {
	var (
		zero V
		raw  []byte
	)
	err := s.db.QueryRowContext(ctx, queryCacheGet, s.namespace, cache.KeyString(key), s.now()).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("failed to read cache entry: %w", err)
	}

	var v V
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, false, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	return v, true, nil
}

// Put stores value until now+ttl. A non-positive ttl removes the entry.
func (s *CacheStore[K, V]) Put(ctx context.Context, key K, value V, ttl time.Duration) error {
	if ttl <= 0 {
		return s.Invalidate(ctx, key)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, queryCachePut, s.namespace, cache.KeyString(key), raw, s.now().Add(ttl)); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

func (s *CacheStore[K, V]) Invalidate(ctx context.Context, key K) error {
	if _, err := s.db.ExecContext(ctx, queryCacheDelete, s.namespace, cache.KeyString(key)); err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}
