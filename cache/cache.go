// Package cache provides a generic, thread-safe read-mostly cache with
// metrics, used for lazily compiled schemas.
package cache

import (
	"sync"
	"sync/atomic"
)

// Cache is a generic thread-safe cache for values that are expensive to
// build and never invalidated. It is tuned for the read-mostly pattern of a
// validation run: after the first use of each key every lookup is served
// under the shared lock with no contention.
//
// The write path is guarded: a miss releases the lock, builds the value
// uncontended, then re-acquires the lock briefly to publish. Two goroutines
// missing on the same key may both build it; the first published value wins
// and the duplicate is discarded. Build functions must therefore be
// side-effect-free.
type Cache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V

	// Metrics (lock-free using atomics)
	hits   atomic.Uint64
	misses atomic.Uint64
	builds atomic.Uint64
}

// New creates an empty Cache.
func New[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		items: make(map[K]V),
	}
}

// Get retrieves a value from the cache.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	v, ok := c.items[key]
	c.mu.RUnlock()

	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Set publishes a value. An already-published value for the same key is
// kept and returned instead, so concurrent first-uses agree on one value.
func (c *Cache[K, V]) Set(key K, value V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.items[key]; ok {
		return existing
	}
	c.items[key] = value
	return value
}

// GetOrCompute returns the cached value for key, building it with fn on a
// miss. fn runs without any lock held; a failed build caches nothing, so
// the next caller retries.
func (c *Cache[K, V]) GetOrCompute(key K, fn func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	c.builds.Add(1)
	v, err := fn()
	if err != nil {
		var zero V
		return zero, err
	}
	return c.Set(key, v), nil
}

// Len returns the current number of cached values.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Stats holds cache counters.
type Stats struct {
	Size   int
	Hits   uint64
	Misses uint64
	Builds uint64
}

// Stats returns the cache counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.RLock()
	size := len(c.items)
	c.mu.RUnlock()

	return Stats{
		Size:   size,
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Builds: c.builds.Load(),
	}
}
