package cache

import (
	"container/list"
	"sync"
	"time"
)

// TTLCache is a thread-safe LRU cache whose entries also expire a fixed TTL
// after insertion. Expired entries read as absent but stay resident until
// removed, evicted, or listed by ExpiredKeys, so callers can act on them.
type TTLCache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[K]*list.Element
	order    *list.List
	now      func() time.Time
}

type ttlEntry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
}

// Evicted is an entry pushed out by a Put at capacity.
type Evicted[K comparable, V any] struct {
	Key   K
	Value V
}

// NewTTLCache creates a cache holding at most capacity entries, each fresh for ttl.
func NewTTLCache[K comparable, V any](capacity int, ttl time.Duration) *TTLCache[K, V] {
	if capacity <= 0 {
		capacity = 1
	}
	return &TTLCache[K, V]{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[K]*list.Element),
		order:    list.New(),
		now:      time.Now,
	}
}

// WithClock replaces the time source. Intended for tests.
func (c *TTLCache[K, V]) WithClock(now func() time.Time) *TTLCache[K, V] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
	return c
}

// Get returns the value for key if present and unexpired, marking it recently used.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	elem, ok := c.items[key]
	if !ok {
		return zero, false
	}
	entry := elem.Value.(*ttlEntry[K, V])
	if c.expired(entry) {
		return zero, false
	}
	c.order.MoveToFront(elem)
	return entry.value, true
}

// Peek returns the value for key whether or not it has expired, without
// touching recency.
func (c *TTLCache[K, V]) Peek(key K) (value V, expired bool, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, found := c.items[key]
	if !found {
		return value, false, false
	}
	entry := elem.Value.(*ttlEntry[K, V])
	return entry.value, c.expired(entry), true
}

// Put stores value under key with a fresh TTL. When a new key pushes the
// cache over capacity, the least recently used entry is removed and returned.
func (c *TTLCache[K, V]) Put(key K, value V) (Evicted[K, V], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)

	if elem, exists := c.items[key]; exists {
		c.order.MoveToFront(elem)
		entry := elem.Value.(*ttlEntry[K, V])
		entry.value = value
		entry.expiresAt = expiresAt
		return Evicted[K, V]{}, false
	}

	var (
		evicted    Evicted[K, V]
		hasEvicted bool
	)
	if c.order.Len() >= c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			entry := oldest.Value.(*ttlEntry[K, V])
			delete(c.items, entry.key)
			c.order.Remove(oldest)
			evicted = Evicted[K, V]{Key: entry.key, Value: entry.value}
			hasEvicted = true
		}
	}

	elem := c.order.PushFront(&ttlEntry[K, V]{key: key, value: value, expiresAt: expiresAt})
	c.items[key] = elem
	return evicted, hasEvicted
}

// Remove deletes key and returns the value it held.
func (c *TTLCache[K, V]) Remove(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	elem, ok := c.items[key]
	if !ok {
		return zero, false
	}
	delete(c.items, key)
	c.order.Remove(elem)
	return elem.Value.(*ttlEntry[K, V]).value, true
}

// ExpiredKeys lists keys whose TTL has elapsed.
func (c *TTLCache[K, V]) ExpiredKeys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	var keys []K
	for e := c.order.Back(); e != nil; e = e.Prev() {
		entry := e.Value.(*ttlEntry[K, V])
		if c.expired(entry) {
			keys = append(keys, entry.key)
		}
	}
	return keys
}

// Keys lists every resident key, expired or not.
func (c *TTLCache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]K, 0, len(c.items))
	for e := c.order.Back(); e != nil; e = e.Prev() {
		keys = append(keys, e.Value.(*ttlEntry[K, V]).key)
	}
	return keys
}

func (c *TTLCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *TTLCache[K, V]) expired(e *ttlEntry[K, V]) bool {
	return !c.now().Before(e.expiresAt)
}
