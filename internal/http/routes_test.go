package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/chasecee/cut-calc/config"
	"github.com/chasecee/cut-calc/internal/service"
)

func routePaths(routes []gin.RouteInfo) map[string]bool {
	paths := make(map[string]bool, len(routes))
	for _, r := range routes {
		paths[r.Method+" "+r.Path] = true
	}
	return paths
}

func TestRouteRegistration_PublicMode(t *testing.T) {
	calculator := service.NewPlanCalculatorService()
	handler := NewHandler(calculator, nil)
	healthHandler := NewHealthHandler()
	router := NewRouter(handler, healthHandler, DefaultRouterConfig())

	paths := routePaths(router.Routes())

	expected := []string{
		http.MethodPost + " /api/calculate",
		http.MethodGet + " /api/stock-profiles",
		http.MethodGet + " /api/stock-profiles/active",
		http.MethodPost + " /api/stock-profiles",
		http.MethodPut + " /api/stock-profiles/:id",
		http.MethodPost + " /api/stock-profiles/:id/activate",
		http.MethodGet + " /healthz",
		http.MethodGet + " /readyz",
		http.MethodGet + " /metrics",
	}
	for _, route := range expected {
		assert.True(t, paths[route], "route %s should be registered", route)
	}

	// No login endpoint without an auth service
	assert.False(t, paths[http.MethodPost+" /api/auth/login"])
}

func TestRouteRegistration_AuthMode(t *testing.T) {
	authService := service.NewAuthService(config.AuthConfig{
		Enabled:           true,
		AdminUsername:     "admin",
		AdminPasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		JWTSecretKey:      "test-secret",
		TokenTTL:          time.Hour,
	})

	calculator := service.NewPlanCalculatorService()
	handler := NewHandler(calculator, nil)
	healthHandler := NewHealthHandler()

	cfg := DefaultRouterConfig()
	cfg.AuthService = authService
	router := NewRouter(handler, healthHandler, cfg)

	paths := routePaths(router.Routes())

	expected := []string{
		http.MethodPost + " /api/auth/login",
		http.MethodPost + " /api/calculate",
		http.MethodGet + " /api/stock-profiles",
		http.MethodGet + " /api/stock-profiles/active",
		http.MethodPost + " /api/stock-profiles",
		http.MethodPut + " /api/stock-profiles/:id",
		http.MethodPost + " /api/stock-profiles/:id/activate",
	}
	for _, route := range expected {
		assert.True(t, paths[route], "route %s should be registered", route)
	}
}
