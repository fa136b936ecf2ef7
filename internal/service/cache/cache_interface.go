// Package cache defines the cache contract used by the plan calculator.
package cache

import "github.com/chasecee/cut-calc/internal/domain/model"

// Cache defines the interface for memoizing plan results by their
// structural input key.
type Cache interface {
	Get(key string) (model.PlanResult, bool)
	Set(key string, value model.PlanResult)
	Invalidate(key string)
	Clear()
	Stop()
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics interface {
	Cache
	Metrics() Metrics
}
