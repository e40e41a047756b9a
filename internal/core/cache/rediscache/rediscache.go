// Package rediscache implements the durable cache tier on Redis.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aevon-lab/devicescout/internal/core/cache"
)

// Client is the subset of the go-redis API used by Store.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Connect parses url, configures the connection pool, and pings the server.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.PoolSize = 10
	opts.MinIdleConns = 2
	opts.MaxRetries = 3
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}

// Store is a cache.Store keeping JSON-encoded values under "<prefix>:<key>".
type Store[K comparable, V any] struct {
	client Client
	prefix string
}

var _ cache.Store[string, int] = (*Store[string, int])(nil)

func New[K comparable, V any](client Client, prefix string) *Store[K, V] {
	return &Store[K, V]{client: client, prefix: prefix}
}

func (s *Store[K, V]) Get(ctx context.Context, key K) (V, bool, error) {
	var zero V
	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("redis get: %w", err)
	}

	var v V
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, false, fmt.Errorf("decode cached value: %w", err)
	}
	return v, true, nil
}

// Put stores value for ttl. A non-positive ttl deletes the key instead,
// since Redis would otherwise keep it forever.
func (s *Store[K, V]) Put(ctx context.Context, key K, value V, ttl time.Duration) error {
	if ttl <= 0 {
		return s.Invalidate(ctx, key)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cached value: %w", err)
	}
	if err := s.client.Set(ctx, s.key(key), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *Store[K, V]) Invalidate(ctx context.Context, key K) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (s *Store[K, V]) key(key K) string {
	return s.prefix + ":" + cache.KeyString(key)
}
