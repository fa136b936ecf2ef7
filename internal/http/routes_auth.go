package http

import (
	"github.com/gin-gonic/gin"

	"github.com/chasecee/cut-calc/internal/middleware"
)

// AuthRoutes registers authentication routes.
type AuthRoutes struct {
	handler *AuthHandler
}

// NewAuthRoutes creates a new AuthRoutes instance.
func NewAuthRoutes(handler *AuthHandler) *AuthRoutes {
	return &AuthRoutes{handler: handler}
}

// RegisterPublicRoutes registers the login endpoint.
func (r *AuthRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", r.handler.Login)
	}
}

// GetProtectedGroup returns a protected router group with JWT auth middleware applied.
// This is useful for other route registrars that need to register protected routes.
func (r *AuthRoutes) GetProtectedGroup(rg *gin.RouterGroup, cfg *RouterConfig) *gin.RouterGroup {
	protected := rg.Group("")
	protected.Use(middleware.JWTAuth(cfg.AuthService))

	if cfg.RateLimit > 0 {
		actorLimiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		protected.Use(actorLimiter.ActorRateLimit())
	}

	return protected
}
