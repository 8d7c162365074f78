// Package cache provides an in-memory TTL cache for fetched stock prices.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	price     float64
	fetchedAt time.Time
}

// PriceCache stores the last fetched price per symbol together with its
// fetch time. Callers choose how much staleness they tolerate: Get applies
// the cache's default TTL, GetWithin applies a caller-supplied one, so a
// single cache can serve both strict and relaxed readers.
type PriceCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry

	now func() time.Time
}

// NewPriceCache creates a cache whose Get method considers entries older
// than ttl expired.
func NewPriceCache(ttl time.Duration) *PriceCache {
	return &PriceCache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the cached price for symbol if it is younger than the
// default TTL.
func (c *PriceCache) Get(symbol string) (float64, bool) {
	return c.GetWithin(symbol, c.ttl)
}

// GetWithin returns the cached price for symbol if it was fetched within
// maxAge. Expired entries are left in place; Put overwrites them.
func (c *PriceCache) GetWithin(symbol string, maxAge time.Duration) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[symbol]
	if !ok || c.now().Sub(e.fetchedAt) >= maxAge {
		return 0, false
	}
	return e.price, true
}

// Put stores a freshly fetched price for symbol.
func (c *PriceCache) Put(symbol string, price float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[symbol] = entry{price: price, fetchedAt: c.now()}
}

// Clear drops all cached prices.
func (c *PriceCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
}
