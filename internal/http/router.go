package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/chasecee/cut-calc/internal/metrics"
	"github.com/chasecee/cut-calc/internal/middleware"
	"github.com/chasecee/cut-calc/internal/service"
)

// RouterConfig carries everything the router needs to assemble its
// middleware stack and route groups.
type RouterConfig struct {
	RateLimit            int
	RateWindow           time.Duration
	RequestTimeout       time.Duration
	APIKeys              map[string]bool
	EnableAuth           bool
	EnableIdempotency    bool
	CORSOrigins          []string
	SwaggerUser          string
	SwaggerPass          string
	LoggingService       service.LoggingService
	StockProfilesService service.StockProfilesService
	AuthService          service.AuthService
}

// DefaultRouterConfig allows 100 requests per caller per minute with
// authentication off.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:  100,
		RateWindow: time.Minute,
		EnableAuth: false,
	}
}

// NewRouter assembles the full gin engine: global middleware, the
// infrastructure endpoints, and the /api group. When a JWT auth service
// is configured, stock profile mutations move behind it; calculation and
// profile reads stay public either way.
func NewRouter(handler *Handler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	mountGlobalMiddleware(router, &cfg)
	mountInfrastructureRoutes(router, healthHandler, &cfg)

	api := router.Group("/api")
	mountAPIMiddleware(api, &cfg)

	if cfg.AuthService != nil {
		mountAuthenticatedRoutes(api, handler, &cfg)
	} else {
		mountPublicRoutes(api, handler, &cfg)
	}

	return router
}

func mountGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "X-CSRF-Token", "Authorization", "accept", "Cache-Control", "X-Requested-With", "X-API-Key", "Idempotency-Key", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.LoggingService),
		middleware.ErrorHandler(),
	)

	// Handlers below reach the logging service through the context.
	router.Use(func(c *gin.Context) {
		c.Set("logging_service", cfg.LoggingService)
		c.Next()
	})

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(limiter.RateLimit())
	}
}

// mountInfrastructureRoutes wires the probes, the Prometheus scrape
// endpoint, and the swagger UI. Swagger goes behind basic auth when
// credentials are configured.
func mountInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	healthHandler.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		docs := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		docs.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		return
	}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func mountAPIMiddleware(api *gin.RouterGroup, cfg *RouterConfig) {
	if cfg.RequestTimeout > 0 {
		api.Use(middleware.TimeoutWithDuration(cfg.RequestTimeout))
	}
	if cfg.EnableIdempotency {
		api.Use(middleware.Idempotency(middleware.DefaultIdempotencyConfig()))
	}
	// API keys only apply in the non-JWT mode; JWT mode scopes its own
	// protection to the mutation routes.
	if cfg.EnableAuth && cfg.AuthService == nil && len(cfg.APIKeys) > 0 {
		api.Use(middleware.APIKeyAuth(cfg.APIKeys))
	}
}

func mountAuthenticatedRoutes(api *gin.RouterGroup, handler *Handler, cfg *RouterConfig) {
	authRoutes := NewAuthRoutes(NewAuthHandler(cfg.AuthService, cfg.LoggingService))
	authRoutes.RegisterPublicRoutes(api)

	profilesHandler := NewStockProfilesHandler(cfg.StockProfilesService, cfg.LoggingService, handler)
	planRoutes := NewPlanRoutes(handler, profilesHandler)
	planRoutes.RegisterPublicRoutes(api)

	protected := authRoutes.GetProtectedGroup(api, cfg)
	planRoutes.RegisterProtectedRoutes(protected, cfg)
}

func mountPublicRoutes(api *gin.RouterGroup, handler *Handler, cfg *RouterConfig) {
	if handler == nil {
		return
	}
	profilesHandler := NewStockProfilesHandler(cfg.StockProfilesService, cfg.LoggingService, handler)
	planRoutes := NewPlanRoutes(handler, profilesHandler)
	planRoutes.RegisterPublicRoutes(api)
	planRoutes.RegisterProtectedRoutes(api, cfg)
}
