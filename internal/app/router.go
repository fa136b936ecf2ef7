// Package app provides router configuration.
package app

import (
	"github.com/chasecee/cut-calc/config"
	"github.com/chasecee/cut-calc/internal/http"
	"github.com/chasecee/cut-calc/internal/repository"
	"github.com/chasecee/cut-calc/internal/service"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter initializes HTTP handlers and router configuration.
func InitializeRouter(
	calculator service.PlanCalculator,
	dbComponents *DatabaseComponents,
	cfg config.Config,
) *RouterComponents {
	var stockProfilesRepo repository.StockProfilesRepositoryInterface
	var loggingService service.LoggingService
	if dbComponents != nil {
		stockProfilesRepo = dbComponents.StockProfilesRepo
		loggingService = dbComponents.LoggingService
	}

	// Initialize stock profiles service. The service tolerates a nil
	// repository and reports it as unavailable.
	stockProfilesService := service.NewStockProfilesService(stockProfilesRepo)

	handler := http.NewHandler(calculator, stockProfilesService, http.WithPlannerDefaults(cfg.Planner))
	healthHandler := http.NewHealthHandler()

	// Register circuit breakers for health monitoring
	if dbComponents != nil {
		if dbComponents.StockProfilesCircuitBreaker != nil {
			healthHandler.RegisterCircuitBreaker("mongodb_stock_profiles", dbComponents.StockProfilesCircuitBreaker)
		}
		if dbComponents.LogsCircuitBreaker != nil {
			healthHandler.RegisterCircuitBreaker("mongodb_logs", dbComponents.LogsCircuitBreaker)
		}
	}

	// Initialize authentication service when an admin credential is configured
	var authService service.AuthService
	if cfg.Auth.Enabled && cfg.Auth.AdminUsername != "" && cfg.Auth.AdminPasswordHash != "" {
		authService = service.NewAuthService(cfg.Auth)
	}

	routerCfg := http.RouterConfig{
		RateLimit:            cfg.Server.RateLimit,
		RateWindow:           cfg.Server.RateWindow,
		RequestTimeout:       cfg.Server.RequestTimeout,
		EnableAuth:           cfg.Auth.Enabled,
		APIKeys:              cfg.Auth.APIKeys,
		EnableIdempotency:    true,
		CORSOrigins:          cfg.Server.CORSOrigins,
		SwaggerUser:          cfg.Server.SwaggerUser,
		SwaggerPass:          cfg.Server.SwaggerPass,
		LoggingService:       loggingService,
		StockProfilesService: stockProfilesService,
		AuthService:          authService,
	}

	return &RouterComponents{
		Handler:       handler,
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
