// Package cache provides a generic in-memory store with per-entry
// time-to-live semantics. Expired entries are evicted lazily on access;
// there is no background sweeper.
package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value    T
	storedAt time.Time
	ttl      time.Duration
}

// TTL is a thread-safe key/value cache where every entry expires a fixed
// duration after it was stored. A read never returns a value older than its
// TTL; the expired entry is deleted on that read instead.
type TTL[T any] struct {
	defaultTTL time.Duration
	now        func() time.Time

	mu      sync.Mutex
	entries map[string]entry[T]
}

// New creates a TTL cache whose entries expire defaultTTL after Set.
func New[T any](defaultTTL time.Duration) *TTL[T] {
	return &TTL[T]{
		defaultTTL: defaultTTL,
		now:        time.Now,
		entries:    make(map[string]entry[T]),
	}
}

// Get returns the cached value for key and true, or the zero value and
// false if the key is absent or its entry has aged past its TTL. An aged
// entry is removed as a side effect.
func (c *TTL[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero T
		return zero, false
	}

	if c.now().Sub(e.storedAt) >= e.ttl {
		delete(c.entries, key)
		var zero T
		return zero, false
	}

	return e.value, true
}

// Set stores value under key with the cache's default TTL, replacing any
// previous entry wholesale.
func (c *TTL[T]) Set(key string, value T) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL stores value under key with an explicit TTL override.
func (c *TTL[T]) SetWithTTL(key string, value T, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[T]{
		value:    value,
		storedAt: c.now(),
		ttl:      ttl,
	}
}

// Clear removes every entry.
func (c *TTL[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[T])
}

// Len reports the number of stored entries, including any that have
// expired but not yet been evicted.
func (c *TTL[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
