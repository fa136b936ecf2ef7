package http

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chasecee/cut-calc/config"
	"github.com/chasecee/cut-calc/internal/domain/dto"
	"github.com/chasecee/cut-calc/internal/i18n"
	"github.com/chasecee/cut-calc/internal/metrics"
	"github.com/chasecee/cut-calc/internal/middleware"
	"github.com/chasecee/cut-calc/internal/repository"
	"github.com/chasecee/cut-calc/internal/service"
)

// stockProfileCache provides thread-safe caching of the active stock profile.
type stockProfileCache struct {
	profile   atomic.Value // holds *repository.StockProfileConfig
	expiresAt atomic.Value // holds time.Time
	mu        sync.Mutex
	ttl       time.Duration
}

// newStockProfileCache creates a new stock profile cache with the given TTL.
func newStockProfileCache(ttl time.Duration) *stockProfileCache {
	c := &stockProfileCache{ttl: ttl}
	c.expiresAt.Store(time.Time{})
	return c
}

// get returns the cached profile if valid, or nil if cache is expired/empty.
func (c *stockProfileCache) get() *repository.StockProfileConfig {
	if exp := c.expiresAt.Load(); exp != nil {
		if expiresAt, ok := exp.(time.Time); ok && time.Now().Before(expiresAt) {
			if p := c.profile.Load(); p != nil {
				if profile, ok := p.(*repository.StockProfileConfig); ok {
					return profile
				}
			}
		}
	}
	return nil
}

// set stores the profile in the cache with TTL.
func (c *stockProfileCache) set(profile *repository.StockProfileConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring lock
	if exp := c.expiresAt.Load(); exp != nil {
		if expiresAt, ok := exp.(time.Time); ok && time.Now().Before(expiresAt) {
			return // Already cached by another goroutine
		}
	}

	c.profile.Store(profile)
	c.expiresAt.Store(time.Now().Add(c.ttl))
}

// invalidate clears the cache.
func (c *stockProfileCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expiresAt.Store(time.Time{})
}

// Handler provides HTTP handlers for cut plan routes.
type Handler struct {
	calculator           service.PlanCalculator
	stockProfilesService service.StockProfilesService
	profileCache         *stockProfileCache
	defaults             config.PlannerConfig
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithStockProfileCacheTTL sets the TTL for active profile caching.
func WithStockProfileCacheTTL(ttl time.Duration) HandlerOption {
	return func(h *Handler) {
		h.profileCache = newStockProfileCache(ttl)
	}
}

// WithPlannerDefaults sets the fallback stock parameters used when a request
// omits them and no stock profile is active.
func WithPlannerDefaults(cfg config.PlannerConfig) HandlerOption {
	return func(h *Handler) {
		h.defaults = cfg
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(calculator service.PlanCalculator, stockProfilesService service.StockProfilesService, opts ...HandlerOption) *Handler {
	h := &Handler{
		calculator:           calculator,
		stockProfilesService: stockProfilesService,
		profileCache:         newStockProfileCache(30 * time.Second), // Default 30s cache
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// getActiveProfile retrieves the active stock profile from cache or database.
func (h *Handler) getActiveProfile(ctx context.Context) *repository.StockProfileConfig {
	// Check cache first
	if profile := h.profileCache.get(); profile != nil {
		return profile
	}

	// Cache miss - fetch from database
	if h.stockProfilesService == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	profile, err := h.stockProfilesService.GetActive(ctx)
	if err != nil || profile == nil {
		return nil
	}

	h.profileCache.set(profile)
	return profile
}

// InvalidateStockProfileCache invalidates the active profile cache.
// Call this when stock profiles are updated.
func (h *Handler) InvalidateStockProfileCache() {
	h.profileCache.invalidate()
}

// fillStockDefaults fills stock parameters a request omitted from the active
// stock profile, falling back to the configured planner defaults. The request
// keeps any value it supplied itself. Kerf is only inherited alongside the
// stock length and only when the request carries neither kerf field; a
// request that names a kerf unit keeps its own kerf width, including zero.
func (h *Handler) fillStockDefaults(ctx context.Context, req *dto.CalculatePlanRequest) {
	if req.StockLength > 0 && req.StockCount >= 1 {
		return
	}

	profile := h.getActiveProfile(ctx)

	if req.StockLength <= 0 {
		if profile != nil {
			req.StockLength = profile.StockLength
			if req.LengthUnit == "" {
				req.LengthUnit = profile.LengthUnit
			}
			if req.KerfWidth == 0 && req.KerfUnit == "" {
				req.KerfWidth = profile.KerfWidth
				req.KerfUnit = profile.KerfUnit
			}
		} else {
			req.StockLength = h.defaults.DefaultStockLength
			if req.LengthUnit == "" {
				req.LengthUnit = h.defaults.DefaultLengthUnit
			}
			if req.KerfWidth == 0 && req.KerfUnit == "" {
				req.KerfWidth = h.defaults.DefaultKerfWidth
				req.KerfUnit = h.defaults.DefaultKerfUnit
			}
		}
	}

	if req.StockCount < 1 {
		if profile != nil && profile.MaxBars >= 1 {
			req.StockCount = profile.MaxBars
		} else if h.defaults.DefaultMaxBars >= 1 {
			req.StockCount = h.defaults.DefaultMaxBars
		}
	}
}

// CalculatePlan handles POST /api/calculate requests.
//
// @Summary      Calculate a cutting plan
// @Description  Computes how to cut the requested piece lengths from a bounded number of stock bars, accounting for blade kerf. Bars are filled largest piece first; every response contains exactly stock_count plans, with unused bars reported as empty plans carrying full-length waste. Stock parameters may be omitted when an active stock profile supplies them; the profile's kerf applies only when both kerf_width and kerf_unit are absent, so a request that sets kerf_unit keeps its own kerf, including zero.
// @Tags         Plans
// @Accept       json
// @Produce      json
// @Param        request body dto.CalculatePlanRequest true "Cut lengths and stock parameters"
// @Success      200 {object} dto.SuccessResponse "Successful calculation"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      503 {object} dto.ErrorResponse "Service unavailable"
// @Router       /api/calculate [post]
func (h *Handler) CalculatePlan(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.CalculatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	h.fillStockDefaults(c.Request.Context(), &req)
	req.Normalize()

	if err := req.Validate(); err != nil {
		if _, ok := err.(*dto.ValidationError); ok {
			metrics.RecordPlanComputation(0, "validation_error")
			builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationCuts, err)
		} else {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		}
		return
	}

	// Audit log (async)
	if loggingService, exists := c.Get("logging_service"); exists {
		if ls, ok := loggingService.(service.LoggingService); ok {
			middleware.AuditLog(ls, c, "calculate", "Cut plan requested", map[string]interface{}{
				"stock_count":  req.StockCount,
				"stock_length": req.StockLength,
				"length_unit":  req.LengthUnit,
				"cut_rows":     len(req.Cuts),
			})
		}
	}

	start := time.Now()
	result := h.calculator.Compute(req.ToPlanInput())
	duration := time.Since(start)

	metrics.RecordPlanComputation(duration, "success")
	builder.SuccessOK(result)
}
