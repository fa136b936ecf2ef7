package http

import (
	"github.com/gin-gonic/gin"
)

var (
	_ PublicRouteGroup    = (*PlanRoutes)(nil)
	_ ProtectedRouteGroup = (*PlanRoutes)(nil)
	_ PublicRouteGroup    = (*AuthRoutes)(nil)
)

// PlanRoutes registers cut plan and stock profile routes.
type PlanRoutes struct {
	planHandler     *Handler
	profilesHandler *StockProfilesHandler
}

// NewPlanRoutes creates a new PlanRoutes instance.
func NewPlanRoutes(planHandler *Handler, profilesHandler *StockProfilesHandler) *PlanRoutes {
	return &PlanRoutes{
		planHandler:     planHandler,
		profilesHandler: profilesHandler,
	}
}

// RegisterPublicRoutes registers the calculation and read-only profile routes.
func (r *PlanRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/calculate", r.planHandler.CalculatePlan)

	profiles := rg.Group("/stock-profiles")
	{
		profiles.GET("", r.profilesHandler.ListStockProfiles)
		profiles.GET("/active", r.profilesHandler.GetActiveStockProfile)
	}
}

// RegisterProtectedRoutes registers the profile mutation routes.
func (r *PlanRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	profiles := rg.Group("/stock-profiles")
	{
		profiles.POST("", r.profilesHandler.CreateStockProfile)
		profiles.PUT("/:id", r.profilesHandler.UpdateStockProfile)
		profiles.POST("/:id/activate", r.profilesHandler.ActivateStockProfile)
	}
}
