package app

import (
	"github.com/chasecee/cut-calc/config"
	"github.com/chasecee/cut-calc/internal/service"
)

// ServiceComponents groups the business-logic services that do not
// depend on storage.
type ServiceComponents struct {
	Calculator service.PlanCalculator
}

// InitializeServices builds the plan calculator. A cache size of zero
// leaves result caching off entirely.
func InitializeServices(cfg config.CacheConfig) *ServiceComponents {
	var opts []service.Option
	if cfg.Size > 0 {
		opts = append(opts, service.WithCache(cfg.Size, cfg.TTL))
	}
	return &ServiceComponents{Calculator: service.NewPlanCalculatorService(opts...)}
}
