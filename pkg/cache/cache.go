package cache

import (
	"sync"
	"time"
)

// Cache is a simple in-memory TTL cache safe for concurrent use.
type Cache struct {
	mu       sync.RWMutex
	items    map[string]item
	maxItems int // 0 = unlimited
}

type item struct {
	v   any
	exp int64 // unix seconds; 0 = no expiry
}

var (
	defaultCache *Cache
	once         sync.Once
	defaultMax   = 10000
)

// Default returns a process-wide cache instance.
func Default() *Cache {
	once.Do(func() {
		defaultCache = &Cache{items: make(map[string]item), maxItems: defaultMax}
		go defaultCache.janitor(60 * time.Second)
	})
	return defaultCache
}

// New returns an isolated cache without a background janitor; expired entries
// are removed lazily on Get.
func New(maxItems int) *Cache {
	return &Cache{items: make(map[string]item), maxItems: maxItems}
}

// Get returns value and whether it exists and has not expired.
func (c *Cache) Get(key string) (any, bool) {
	now := time.Now().Unix()
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if e.exp != 0 && e.exp < now {
		// lazy delete
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.v, true
}

// Set stores a value with TTL. ttl<=0 means no expiry.
func (c *Cache) Set(key string, v any, ttl time.Duration) {
	var exp int64
	if ttl > 0 {
		exp = time.Now().Add(ttl).Unix()
	}
	now := time.Now().Unix()
	c.mu.Lock()
	if c.maxItems > 0 && len(c.items) >= c.maxItems {
		// over capacity: drop expired entries first, then arbitrary ones
		for k, e := range c.items {
			if len(c.items) < c.maxItems {
				break
			}
			if e.exp != 0 && e.exp < now {
				delete(c.items, k)
			}
		}
		for k := range c.items {
			if len(c.items) < c.maxItems {
				break
			}
			delete(c.items, k)
		}
	}
	c.items[key] = item{v: v, exp: exp}
	c.mu.Unlock()
}

// Delete removes a key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// janitor periodically removes expired items.
func (c *Cache) janitor(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for range t.C {
		now := time.Now().Unix()
		c.mu.Lock()
		for k, e := range c.items {
			if e.exp != 0 && e.exp < now {
				delete(c.items, k)
			}
		}
		c.mu.Unlock()
	}
}
