package middleware

import (
	"hash/fnv"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chasecee/cut-calc/internal/domain/dto"
	"github.com/chasecee/cut-calc/internal/i18n"
)

const defaultNumShards = 16

// bucket is the fixed-window quota for one caller.
type bucket struct {
	tokens    int
	lastReset time.Time
}

type rateLimiterShard struct {
	mu      sync.Mutex
	buckets map[string]*bucket
}

// ShardedRateLimiter enforces a fixed-window request quota per caller.
// Buckets are spread over shards keyed by FNV hash so concurrent plan
// requests from many stations do not contend on one lock.
type ShardedRateLimiter struct {
	shards    []*rateLimiterShard
	numShards int
	rate      int
	window    time.Duration
	stopCh    chan struct{}
}

// RateLimiter is the name most call sites use.
type RateLimiter = ShardedRateLimiter

// NewRateLimiter builds a limiter with the default shard count.
func NewRateLimiter(rate int, window time.Duration) *ShardedRateLimiter {
	return NewShardedRateLimiter(rate, window, defaultNumShards)
}

// NewShardedRateLimiter builds a limiter with an explicit shard count.
func NewShardedRateLimiter(rate int, window time.Duration, numShards int) *ShardedRateLimiter {
	if numShards <= 0 {
		numShards = defaultNumShards
	}

	shards := make([]*rateLimiterShard, numShards)
	for i := range shards {
		shards[i] = &rateLimiterShard{
			buckets: make(map[string]*bucket),
		}
	}

	rl := &ShardedRateLimiter{
		shards:    shards,
		numShards: numShards,
		rate:      rate,
		window:    window,
		stopCh:    make(chan struct{}),
	}

	go rl.sweepLoop()
	return rl
}

func (rl *ShardedRateLimiter) shardFor(key string) *rateLimiterShard {
	h := fnv.New32a()
	h.Write([]byte(key))
	return rl.shards[h.Sum32()%uint32(rl.numShards)]
}

// take consumes one token from the caller's bucket, starting a fresh window
// when the previous one has lapsed.
func (rl *ShardedRateLimiter) take(key string) (allowed bool, remaining int) {
	shard := rl.shardFor(key)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	b, exists := shard.buckets[key]
	now := time.Now()

	if !exists || now.Sub(b.lastReset) > rl.window {
		shard.buckets[key] = &bucket{tokens: rl.rate - 1, lastReset: now}
		return true, rl.rate - 1
	}

	if b.tokens <= 0 {
		return false, 0
	}

	b.tokens--
	return true, b.tokens
}

// limit is the shared middleware body; keyFn decides whose quota is charged.
func (rl *ShardedRateLimiter) limit(keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining := rl.take(keyFn(c))

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.rate))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			locale := i18n.GetLocale(c)
			c.Header("Retry-After", rl.window.String())
			resp := dto.NewError(dto.ErrCodeRateLimit, i18n.GetTranslator().Translate(i18n.ErrKeyRateLimitExceeded, locale)).
				WithRequestID(GetRequestID(c))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, resp)
			return
		}

		c.Next()
	}
}

// RateLimit charges the client IP's quota.
func (rl *ShardedRateLimiter) RateLimit() gin.HandlerFunc {
	return rl.limit(func(c *gin.Context) string {
		return c.ClientIP()
	})
}

// ActorRateLimit charges the authenticated actor's quota, falling back to
// the client IP for anonymous requests.
func (rl *ShardedRateLimiter) ActorRateLimit() gin.HandlerFunc {
	return rl.limit(rl.actorKey)
}

// actorKey names the quota owner. The prefixes keep an actor named like an
// IP address from sharing a bucket with that IP.
func (rl *ShardedRateLimiter) actorKey(c *gin.Context) string {
	if actor := GetActor(c); actor != "" {
		return "actor:" + actor
	}
	return "ip:" + c.ClientIP()
}

func (rl *ShardedRateLimiter) sweepLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stopCh:
			return
		}
	}
}

// sweep drops buckets idle for more than two windows.
func (rl *ShardedRateLimiter) sweep() {
	now := time.Now()
	threshold := rl.window * 2

	for _, shard := range rl.shards {
		shard.mu.Lock()
		for key, b := range shard.buckets {
			if now.Sub(b.lastReset) > threshold {
				delete(shard.buckets, key)
			}
		}
		shard.mu.Unlock()
	}
}

// Stop ends the background sweep.
func (rl *ShardedRateLimiter) Stop() {
	close(rl.stopCh)
}

// Stats counts tracked callers in total and per shard.
func (rl *ShardedRateLimiter) Stats() (totalCallers int, perShard []int) {
	perShard = make([]int, rl.numShards)
	for i, shard := range rl.shards {
		shard.mu.Lock()
		perShard[i] = len(shard.buckets)
		totalCallers += perShard[i]
		shard.mu.Unlock()
	}
	return totalCallers, perShard
}
