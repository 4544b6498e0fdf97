// Package cache provides a process-local TTL cache shared by the search and
// fetch stages of the research pipeline. It is best-effort: callers must
// treat a miss as a signal to do the real work, never as an error.
package cache

import (
	"sync"
	"time"
)

// entry pairs a stored value with its write time. An entry is visible only
// while now - storedAt < ttl; expired entries are evicted lazily on read.
type entry struct {
	value    any
	storedAt time.Time
}

// Stats reports cache effectiveness counters.
type Stats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"` // percentage, one decimal
	Size    int     `json:"size"`
}

// Cache is a TTL cache safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	hits    int64
	misses  int64
	now     func() time.Time // overridable for tests
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the value stored under key if it was written within the ttl
// window. Expired entries are removed and counted as misses.
func (c *Cache) Get(key string, ttl time.Duration) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if ok && c.now().Sub(e.storedAt) < ttl {
		c.hits++
		return e.value, true
	}
	if ok {
		delete(c.entries, key)
	}
	c.misses++
	return nil, false
}

// Set stores value under key with the current timestamp. A concurrent
// duplicate write is harmless; last writer wins.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, storedAt: c.now()}
}

// ClearOld sweeps entries older than maxAge regardless of any read TTL.
func (c *Cache) ClearOld(maxAge time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.now().Add(-maxAge)
	for k, e := range c.entries {
		if e.storedAt.Before(cutoff) {
			delete(c.entries, k)
		}
	}
}

// Stats returns a snapshot of hit/miss counters and current size.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.hits + c.misses
	rate := 0.0
	if total > 0 {
		rate = float64(c.hits) / float64(total) * 100
		rate = float64(int(rate*10+0.5)) / 10
	}
	return Stats{
		Hits:    c.hits,
		Misses:  c.misses,
		HitRate: rate,
		Size:    len(c.entries),
	}
}
