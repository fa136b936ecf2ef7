package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chasecee/cut-calc/internal/domain/dto"
	"github.com/chasecee/cut-calc/internal/i18n"
	"github.com/chasecee/cut-calc/internal/middleware"
	"github.com/chasecee/cut-calc/internal/repository"
	"github.com/chasecee/cut-calc/internal/service"
)

// StockProfilesHandler provides HTTP handlers for stock profile management.
type StockProfilesHandler struct {
	stockProfilesService service.StockProfilesService
	loggingService       service.LoggingService
	planHandler          *Handler
}

// NewStockProfilesHandler creates a new StockProfilesHandler instance. The
// plan handler is optional; when set, its active profile cache is invalidated
// after every profile mutation.
func NewStockProfilesHandler(stockProfilesService service.StockProfilesService, loggingService service.LoggingService, planHandler *Handler) *StockProfilesHandler {
	return &StockProfilesHandler{
		stockProfilesService: stockProfilesService,
		loggingService:       loggingService,
		planHandler:          planHandler,
	}
}

// invalidateCaches drops cached plan results and the active profile cache
// after a profile mutation.
func (h *StockProfilesHandler) invalidateCaches() {
	if h.planHandler == nil {
		return
	}
	h.planHandler.InvalidateStockProfileCache()
	if h.planHandler.calculator != nil {
		h.planHandler.calculator.InvalidateCache()
	}
}

func (h *StockProfilesHandler) toFields(req *dto.StockProfileRequest) repository.StockProfileFields {
	return repository.StockProfileFields{
		Name:        req.Name,
		StockLength: req.StockLength,
		LengthUnit:  req.LengthUnit,
		KerfWidth:   req.KerfWidth,
		KerfUnit:    req.KerfUnit,
		MaxBars:     req.MaxBars,
	}
}

// GetActiveStockProfile handles GET /api/stock-profiles/active requests.
//
// @Summary      Get the active stock profile
// @Description  Returns the stock profile whose parameters fill calculation requests that omit stock dimensions
// @Tags         StockProfiles
// @Produce      json
// @Success      200 {object} dto.SuccessResponse "Active stock profile, or null when none is configured"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/stock-profiles/active [get]
func (h *StockProfilesHandler) GetActiveStockProfile(c *gin.Context) {
	builder := NewResponseBuilder(c)

	profile, err := h.stockProfilesService.GetActive(c.Request.Context())
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(profile)
}

// ListStockProfiles handles GET /api/stock-profiles requests.
//
// @Summary      List stock profiles
// @Description  Returns stock profiles, newest first
// @Tags         StockProfiles
// @Produce      json
// @Param        limit query int false "Maximum number of profiles to return" default(10)
// @Success      200 {object} dto.SuccessResponse "Stock profiles"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/stock-profiles [get]
func (h *StockProfilesHandler) ListStockProfiles(c *gin.Context) {
	builder := NewResponseBuilder(c)

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	profiles, err := h.stockProfilesService.List(c.Request.Context(), limit)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(profiles)
}

// CreateStockProfile handles POST /api/stock-profiles requests.
//
// @Summary      Create a stock profile
// @Description  Creates a new stock profile and makes it the active one
// @Tags         StockProfiles
// @Accept       json
// @Produce      json
// @Param        request body dto.StockProfileRequest true "Stock profile attributes"
// @Success      201 {object} dto.SuccessResponse "Created stock profile"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/stock-profiles [post]
func (h *StockProfilesHandler) CreateStockProfile(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.StockProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	if err := req.Validate(); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	actor := middleware.GetActor(c)
	profile, err := h.stockProfilesService.Create(c.Request.Context(), h.toFields(&req), actor)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	h.invalidateCaches()

	middleware.AuditLog(h.loggingService, c, "stock_profile_created", "Stock profile created", map[string]interface{}{
		"profile_id":   profile.ID.Hex(),
		"name":         profile.Name,
		"stock_length": profile.StockLength,
		"length_unit":  profile.LengthUnit,
	})

	builder.SuccessCreated(profile)
}

// UpdateStockProfile handles PUT /api/stock-profiles/:id requests.
//
// @Summary      Update a stock profile
// @Description  Updates the attributes of an existing stock profile and bumps its version
// @Tags         StockProfiles
// @Accept       json
// @Produce      json
// @Param        id path string true "Stock profile ID"
// @Param        request body dto.StockProfileRequest true "Stock profile attributes"
// @Success      200 {object} dto.SuccessResponse "Updated stock profile"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      404 {object} dto.ErrorResponse "Stock profile not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/stock-profiles/{id} [put]
func (h *StockProfilesHandler) UpdateStockProfile(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}

	var req dto.StockProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	if err := req.Validate(); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	actor := middleware.GetActor(c)
	profile, err := h.stockProfilesService.Update(c.Request.Context(), id, h.toFields(&req), actor)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			builder.Error(http.StatusNotFound, i18n.ErrKeyNotFound, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	h.invalidateCaches()

	middleware.AuditLog(h.loggingService, c, "stock_profile_updated", "Stock profile updated", map[string]interface{}{
		"profile_id": profile.ID.Hex(),
		"name":       profile.Name,
		"version":    profile.Version,
	})

	builder.SuccessOK(profile)
}

// ActivateStockProfile handles POST /api/stock-profiles/:id/activate requests.
//
// @Summary      Activate a stock profile
// @Description  Makes the given profile the active one; any previously active profile is deactivated
// @Tags         StockProfiles
// @Produce      json
// @Param        id path string true "Stock profile ID"
// @Success      200 {object} dto.SuccessResponse "Activated stock profile"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid ID"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      404 {object} dto.ErrorResponse "Stock profile not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/stock-profiles/{id}/activate [post]
func (h *StockProfilesHandler) ActivateStockProfile(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}

	profile, err := h.stockProfilesService.Activate(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			builder.Error(http.StatusNotFound, i18n.ErrKeyNotFound, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	h.invalidateCaches()

	middleware.AuditLog(h.loggingService, c, "stock_profile_activated", "Stock profile activated", map[string]interface{}{
		"profile_id": profile.ID.Hex(),
		"name":       profile.Name,
	})

	builder.SuccessOK(profile)
}
