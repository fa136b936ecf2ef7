// Package service contains the business logic for the cut-calc service.
package service

import (
	"container/list"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chasecee/cut-calc/internal/domain/model"
	"github.com/chasecee/cut-calc/internal/metrics"
	"github.com/chasecee/cut-calc/internal/service/cache"
)

// ShardedCache spreads memoized plan results over several TTL caches so
// that saw stations recomputing plans in parallel do not serialize on a
// single lock.
type ShardedCache struct {
	shards []*ttlCache
	mask   uint32
}

// NewShardedCache builds a sharded cache holding up to capacity results
// in total. numShards is rounded up to the next power of two so shard
// selection stays a mask, not a modulo.
func NewShardedCache(capacity int, ttl time.Duration, numShards int) *ShardedCache {
	if numShards <= 0 {
		numShards = 16
	}
	n := 1
	for n < numShards {
		n <<= 1
	}

	perShard := capacity / n
	if perShard < 1 {
		perShard = 1
	}

	sc := &ShardedCache{
		shards: make([]*ttlCache, n),
		mask:   uint32(n - 1),
	}
	for i := range sc.shards {
		sc.shards[i] = newTTLCache(perShard, ttl)
	}
	return sc
}

func (sc *ShardedCache) shardFor(key string) *ttlCache {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return sc.shards[h.Sum32()&sc.mask]
}

// Get looks up a memoized plan result.
func (sc *ShardedCache) Get(key string) (model.PlanResult, bool) {
	return sc.shardFor(key).Get(key)
}

// Set stores a plan result under its input key.
func (sc *ShardedCache) Set(key string, value model.PlanResult) {
	sc.shardFor(key).Set(key, value)
}

// Invalidate drops a single memoized result.
func (sc *ShardedCache) Invalidate(key string) {
	sc.shardFor(key).Invalidate(key)
}

// Clear empties every shard.
func (sc *ShardedCache) Clear() {
	for _, shard := range sc.shards {
		shard.Clear()
	}
}

// Stop ends the expiry sweepers of all shards.
func (sc *ShardedCache) Stop() {
	for _, shard := range sc.shards {
		shard.Stop()
	}
}

// Metrics sums the per-shard counters.
func (sc *ShardedCache) Metrics() cache.Metrics {
	var total cache.Metrics
	for _, shard := range sc.shards {
		m := shard.Metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Size += m.Size
		total.Capacity += m.Capacity
	}
	return total
}

// ttlCache is an LRU cache whose entries expire after a fixed TTL. It
// backs the plan calculator's memoization layer.
type ttlCache struct {
	mu       sync.RWMutex
	capacity int
	ttl      time.Duration
	index    map[string]*list.Element
	order    *list.List
	stopCh   chan struct{}

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

type ttlEntry struct {
	key       string
	value     model.PlanResult
	expiresAt time.Time
}

func newTTLCache(capacity int, ttl time.Duration) *ttlCache {
	c := &ttlCache{
		capacity: capacity,
		ttl:      ttl,
		index:    make(map[string]*list.Element, capacity),
		order:    list.New(),
		stopCh:   make(chan struct{}),
	}
	go c.sweepLoop()
	return c
}

// Stop ends the expiry sweeper.
func (c *ttlCache) Stop() {
	close(c.stopCh)
}

// Metrics reports the cache counters and current fill.
func (c *ttlCache) Metrics() cache.Metrics {
	c.mu.RLock()
	size := len(c.index)
	c.mu.RUnlock()

	return cache.Metrics{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      size,
		Capacity:  c.capacity,
	}
}

// Get returns the memoized result for key if it is present and fresh.
func (c *ttlCache) Get(key string) (model.PlanResult, bool) {
	c.mu.RLock()
	elem, ok := c.index[key]
	c.mu.RUnlock()

	if !ok {
		c.misses.Add(1)
		metrics.RecordCacheOperation("get", "miss")
		return model.PlanResult{}, false
	}

	entry := elem.Value.(*ttlEntry)
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		if _, still := c.index[key]; still {
			c.dropElement(elem)
		}
		c.mu.Unlock()
		c.misses.Add(1)
		metrics.RecordCacheOperation("get", "expired")
		return model.PlanResult{}, false
	}

	c.mu.Lock()
	c.order.MoveToFront(elem)
	c.mu.Unlock()

	c.hits.Add(1)
	metrics.RecordCacheOperation("get", "hit")
	return entry.value, true
}

// Set stores value under key with a fresh TTL. The least recently used
// entry is evicted when the cache is at capacity.
func (c *ttlCache) Set(key string, value model.PlanResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[key]; ok {
		entry := elem.Value.(*ttlEntry)
		entry.value = value
		entry.expiresAt = time.Now().Add(c.ttl)
		c.order.MoveToFront(elem)
		return
	}

	entry := &ttlEntry{
		key:       key,
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.index[key] = c.order.PushFront(entry)

	if len(c.index) > c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.dropElement(oldest)
			c.evictions.Add(1)
			metrics.RecordCacheOperation("evict", "capacity")
		}
	}
	metrics.RecordCacheOperation("set", "success")
}

func (c *ttlCache) sweepLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// Sweeping an almost-empty cache is not worth the lock.
			c.mu.RLock()
			nearlyFull := len(c.index) > c.capacity*80/100
			c.mu.RUnlock()

			if nearlyFull {
				c.sweep()
			}
		case <-c.stopCh:
			return
		}
	}
}

// sweep drops every expired entry.
func (c *ttlCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for elem := c.order.Front(); elem != nil; {
		next := elem.Next()
		if now.After(elem.Value.(*ttlEntry).expiresAt) {
			c.dropElement(elem)
		}
		elem = next
	}
}

func (c *ttlCache) dropElement(elem *list.Element) {
	delete(c.index, elem.Value.(*ttlEntry).key)
	c.order.Remove(elem)
}

// Invalidate drops a single key.
func (c *ttlCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[key]; ok {
		c.dropElement(elem)
		metrics.RecordCacheOperation("invalidate", "success")
	}
}

// Clear empties the cache and resets the counters.
func (c *ttlCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.index = make(map[string]*list.Element, c.capacity)
	c.order.Init()

	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)

	metrics.RecordCacheOperation("clear", "success")
}
