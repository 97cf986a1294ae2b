// Package cache holds serialized query results until a write invalidates them.
//
// Entries never expire on their own. A key is present if and only if it was
// set after its last invalidation. Callers build keys with the helpers in
// keys.go and invalidate them through Invalidation after a successful write.
package cache

import (
	"bytes"
	"log/slog"
	"sync"
	"sync/atomic"

	"ecommerce-backend/internal/observability"
)

// Cache is a process-local table of serialized results. It is safe for
// concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string][]byte
	logger  *slog.Logger

	hits    atomic.Int64
	misses  atomic.Int64
	sets    atomic.Int64
	deletes atomic.Int64
}

// Stats is a point-in-time snapshot of cache activity.
type Stats struct {
	Keys    int   `json:"keys"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Sets    int64 `json:"sets"`
	Deletes int64 `json:"deletes"`
}

func New(logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		entries: make(map[string][]byte),
		logger:  logger,
	}
}

func (c *Cache) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[key]
	return ok
}

// Get returns a copy of the blob stored under key.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	value, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		c.misses.Add(1)
		observability.CacheMisses.Inc()
		return nil, false
	}

	c.hits.Add(1)
	observability.CacheHits.Inc()
	return bytes.Clone(value), true
}

// Set stores value under key, replacing any previous entry.
func (c *Cache) Set(key string, value []byte) {
	c.mu.Lock()
	c.entries[key] = bytes.Clone(value)
	c.mu.Unlock()

	c.sets.Add(1)
}

// DeleteMany removes every listed key and reports how many were present.
// Keys that are not cached are ignored.
func (c *Cache) DeleteMany(keys ...string) int {
	c.mu.Lock()
	removed := 0
	for _, key := range keys {
		if _, ok := c.entries[key]; ok {
			delete(c.entries, key)
			removed++
		}
	}
	c.mu.Unlock()

	c.deletes.Add(int64(removed))
	return removed
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) Stats() Stats {
	return Stats{
		Keys:    c.Len(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Sets:    c.sets.Load(),
		Deletes: c.deletes.Load(),
	}
}
