package http

import (
	"github.com/gin-gonic/gin"
)

// PublicRouteGroup mounts endpoints that any caller may reach.
type PublicRouteGroup interface {
	RegisterPublicRoutes(rg *gin.RouterGroup)
}

// ProtectedRouteGroup mounts endpoints gated by the configured
// authentication middleware.
type ProtectedRouteGroup interface {
	RegisterProtectedRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}
