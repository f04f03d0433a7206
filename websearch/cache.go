package websearch

import (
	"sync"
	"time"
)

// Cache is an in-memory TTL cache for lookup snippets. Re-running a batch or
// re-processing overlapping pricebooks must not hammer distributor sites.
type Cache struct {
	ttl   time.Duration
	data  map[string]cacheEntry
	mutex sync.RWMutex

	hits   int64
	misses int64
}

type cacheEntry struct {
	snippet   string
	timestamp time.Time
}

// NewCache creates a cache. A zero TTL disables expiry checks.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:  ttl,
		data: make(map[string]cacheEntry),
	}
}

// Get returns a cached snippet if present and fresh.
func (c *Cache) Get(key string) (string, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.data[key]
	if !exists {
		c.misses++
		return "", false
	}
	if c.ttl > 0 && time.Since(entry.timestamp) > c.ttl {
		delete(c.data, key)
		c.misses++
		return "", false
	}

	c.hits++
	return entry.snippet, true
}

// Set stores a snippet. Empty snippets are cached too: a confirmed "nothing
// found" is as expensive to re-discover as a hit.
func (c *Cache) Set(key, snippet string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data[key] = cacheEntry{snippet: snippet, timestamp: time.Now()}
}

// Stats returns hit/miss counters and current size.
func (c *Cache) Stats() (hits, misses int64, size int) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.hits, c.misses, len(c.data)
}
