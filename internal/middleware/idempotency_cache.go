package middleware

import (
	"sync"
	"time"
)

// idempotencyCache holds replayable responses keyed by request fingerprint.
// A background sweep evicts entries past their TTL.
type idempotencyCache struct {
	mu    sync.RWMutex
	items map[uint64]*cachedResponse
	ttl   time.Duration
}

func newIdempotencyCache(ttl time.Duration) *idempotencyCache {
	c := &idempotencyCache{
		items: make(map[uint64]*cachedResponse),
		ttl:   ttl,
	}
	go c.sweepLoop()
	return c
}

// Get returns the stored response unless its TTL has lapsed.
func (c *idempotencyCache) Get(key uint64) (*cachedResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	resp, ok := c.items[key]
	if !ok || time.Since(resp.Timestamp) > c.ttl {
		return nil, false
	}
	return resp, true
}

// Set stores a response, stamping it with the current time.
func (c *idempotencyCache) Set(key uint64, resp *cachedResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	resp.Timestamp = time.Now()
	c.items[key] = resp
}

func (c *idempotencyCache) sweepLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.sweep()
	}
}

func (c *idempotencyCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, resp := range c.items {
		if now.Sub(resp.Timestamp) > c.ttl {
			delete(c.items, key)
		}
	}
}
