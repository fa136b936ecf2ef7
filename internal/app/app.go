package app

import (
	"github.com/gin-gonic/gin"

	"github.com/chasecee/cut-calc/config"
	"github.com/chasecee/cut-calc/internal/http"
	"github.com/chasecee/cut-calc/internal/middleware"
)

// InitializeApp assembles every component of the service from cfg and
// returns the router ready to serve. MongoDB-backed features degrade to
// nil components when the database section is disabled.
func InitializeApp(cfg config.Config) *gin.Engine {
	InitializeLogger()

	services := InitializeServices(cfg.Cache)
	db := InitializeDatabase(cfg.Database, cfg.Planner)

	if db != nil {
		middleware.InitAsyncLogger(db.LoggingService, middleware.DefaultAsyncLoggerConfig())
	}

	router := InitializeRouter(services.Calculator, db, cfg)
	return http.NewRouter(router.Handler, router.HealthHandler, router.Config)
}
