// Package keylock serializes work per logical key without a fixed lock pool.
package keylock

import (
	"context"
	"sync"

	"github.com/aevon-lab/devicescout/internal/core/partition"
)

// Table hands out one exclusive lock per key and forgets the key once no
// caller holds or waits on it. Memory is bounded by the number of keys
// currently contended, not by the number of keys ever seen.
type Table struct {
	shards [partition.Count]shard
}

type shard struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	sem  chan struct{}
	refs int
}

// New creates an empty lock table.
func New() *Table {
	t := &Table{}
	for i := range t.shards {
		t.shards[i].entries = make(map[string]*entry)
	}
	return t
}

// Do runs fn while holding the lock for key. At most one fn runs per key at a time.
// Blocks until the lock is free or ctx is done. Whatever fn returns is passed through
// after the lock is released and the reference is dropped.
func (t *Table) Do(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	s := &t.shards[partition.For(key)]
	e := s.acquire(key)
	defer s.release(key, e)

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-e.sem }()

	return fn(ctx)
}

// Len returns the number of keys currently held or waited on.
func (t *Table) Len() int {
	n := 0
	for i := range t.shards {
		s := &t.shards[i]
		s.mu.Lock()
		n += len(s.entries)
		s.mu.Unlock()
	}
	return n
}

// acquire gets or creates the entry for key and takes a reference in one step.
func (s *shard) acquire(key string) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		s.entries[key] = e
	}
	e.refs++
	return e
}

// release drops a reference and removes the entry when it was the last one.
func (s *shard) release(key string, e *entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.refs--
	if e.refs == 0 && s.entries[key] == e {
		delete(s.entries, key)
	}
}
