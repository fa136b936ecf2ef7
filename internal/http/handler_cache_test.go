package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chasecee/cut-calc/internal/repository"
	"github.com/chasecee/cut-calc/internal/service"
)

// countingProfilesService serves a fixed active profile and counts lookups.
type countingProfilesService struct {
	profile    *repository.StockProfileConfig
	getActives atomic.Int64
}

func (s *countingProfilesService) GetActive(ctx context.Context) (*repository.StockProfileConfig, error) {
	s.getActives.Add(1)
	return s.profile, nil
}

func (s *countingProfilesService) Create(ctx context.Context, fields repository.StockProfileFields, createdBy string) (*repository.StockProfileConfig, error) {
	return nil, service.ErrRepositoryNotConfigured
}

func (s *countingProfilesService) Update(ctx context.Context, id primitive.ObjectID, fields repository.StockProfileFields, updatedBy string) (*repository.StockProfileConfig, error) {
	return nil, service.ErrRepositoryNotConfigured
}

func (s *countingProfilesService) List(ctx context.Context, limit int) ([]repository.StockProfileConfig, error) {
	return nil, service.ErrRepositoryNotConfigured
}

func (s *countingProfilesService) Activate(ctx context.Context, id primitive.ObjectID) (*repository.StockProfileConfig, error) {
	return nil, service.ErrRepositoryNotConfigured
}

func testProfile() *repository.StockProfileConfig {
	return &repository.StockProfileConfig{
		ID:          primitive.NewObjectID(),
		Name:        "aluminum extrusion 2m",
		StockLength: 2000,
		LengthUnit:  "mm",
		KerfWidth:   3.2,
		KerfUnit:    "mm",
		MaxBars:     10,
		Active:      true,
		Version:     1,
	}
}

func calculateWithProfiles(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/calculate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestStockProfileCache_ReusesProfileWithinTTL(t *testing.T) {
	profiles := &countingProfilesService{profile: testProfile()}
	calculator := service.NewPlanCalculatorService()
	handler := NewHandler(calculator, profiles, WithStockProfileCacheTTL(time.Minute))
	healthHandler := NewHealthHandler()
	router := NewRouter(handler, healthHandler, DefaultRouterConfig())

	body := `{"cuts": [{"length": 1500, "quantity": 2}]}`

	for i := 0; i < 5; i++ {
		w := calculateWithProfiles(router, body)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, int64(1), profiles.getActives.Load())
}

func TestStockProfileCache_ExpiresAfterTTL(t *testing.T) {
	profiles := &countingProfilesService{profile: testProfile()}
	calculator := service.NewPlanCalculatorService()
	handler := NewHandler(calculator, profiles, WithStockProfileCacheTTL(20*time.Millisecond))
	healthHandler := NewHealthHandler()
	router := NewRouter(handler, healthHandler, DefaultRouterConfig())

	body := `{"cuts": [{"length": 1500, "quantity": 2}]}`

	w := calculateWithProfiles(router, body)
	assert.Equal(t, http.StatusOK, w.Code)

	time.Sleep(40 * time.Millisecond)

	w = calculateWithProfiles(router, body)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, int64(2), profiles.getActives.Load())
}

func TestStockProfileCache_Invalidate(t *testing.T) {
	profiles := &countingProfilesService{profile: testProfile()}
	calculator := service.NewPlanCalculatorService()
	handler := NewHandler(calculator, profiles, WithStockProfileCacheTTL(time.Minute))
	healthHandler := NewHealthHandler()
	router := NewRouter(handler, healthHandler, DefaultRouterConfig())

	body := `{"cuts": [{"length": 1500, "quantity": 2}]}`

	w := calculateWithProfiles(router, body)
	assert.Equal(t, http.StatusOK, w.Code)

	handler.InvalidateStockProfileCache()

	w = calculateWithProfiles(router, body)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, int64(2), profiles.getActives.Load())
}

func TestStockProfileCache_ProfileFillsStockParameters(t *testing.T) {
	profiles := &countingProfilesService{profile: testProfile()}
	calculator := service.NewPlanCalculatorService()
	handler := NewHandler(calculator, profiles)
	healthHandler := NewHealthHandler()
	router := NewRouter(handler, healthHandler, DefaultRouterConfig())

	// Request omits every stock parameter; the profile supplies them.
	body := `{"cuts": [{"length": 1500, "quantity": 6}]}`
	w := calculateWithProfiles(router, body)

	assert.Equal(t, http.StatusOK, w.Code)
	result := decodePlanResult(t, w)
	assert.Len(t, result.Plans, 10)
	assert.Equal(t, []float64{1500}, result.Plans[0].Cuts)
	assert.InDelta(t, 496.8, result.Plans[0].Waste, 1e-9)
}

func TestStockProfileCache_ExplicitZeroKerfWithProfileStock(t *testing.T) {
	profiles := &countingProfilesService{profile: testProfile()}
	calculator := service.NewPlanCalculatorService()
	handler := NewHandler(calculator, profiles)
	healthHandler := NewHealthHandler()
	router := NewRouter(handler, healthHandler, DefaultRouterConfig())

	// Naming a kerf unit keeps the request's zero kerf while the stock
	// dimensions still come from the profile. With the profile's 3.2mm kerf
	// only three 500mm pieces would fit on a 2000mm bar.
	body := `{"kerf_width": 0, "kerf_unit": "mm", "cuts": [{"length": 500, "quantity": 4}]}`
	w := calculateWithProfiles(router, body)

	assert.Equal(t, http.StatusOK, w.Code)
	result := decodePlanResult(t, w)
	assert.Len(t, result.Plans, 10)
	assert.Equal(t, []float64{500, 500, 500, 500}, result.Plans[0].Cuts)
	assert.Equal(t, 0.0, result.Plans[0].Waste)
}

func TestStockProfileCache_RequestOverridesProfile(t *testing.T) {
	profiles := &countingProfilesService{profile: testProfile()}
	calculator := service.NewPlanCalculatorService()
	handler := NewHandler(calculator, profiles)
	healthHandler := NewHealthHandler()
	router := NewRouter(handler, healthHandler, DefaultRouterConfig())

	// Explicit stock parameters win over the active profile.
	body := `{"stock_count": 1, "stock_length": 1000, "kerf_width": 0, "kerf_unit": "mm", "cuts": [{"length": 400, "quantity": 2}]}`
	w := calculateWithProfiles(router, body)

	assert.Equal(t, http.StatusOK, w.Code)
	result := decodePlanResult(t, w)
	assert.Len(t, result.Plans, 1)
	assert.Equal(t, []float64{400, 400}, result.Plans[0].Cuts)
	assert.Equal(t, 200.0, result.Plans[0].Waste)
	assert.Equal(t, int64(0), profiles.getActives.Load())
}
