//go:build integration

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chasecee/cut-calc/internal/circuitbreaker"
	"github.com/chasecee/cut-calc/internal/repository"
	"github.com/chasecee/cut-calc/internal/service"
)

func setupStockProfilesIntegrationRouter(dbName string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	uri := getSharedContainerURI()
	db, err := repository.NewMongoDB(uri, dbName)
	if err != nil {
		panic(err)
	}

	calculator := service.NewPlanCalculatorService()
	logsRepo := repository.NewLogsRepository(db)
	logsCB := circuitbreaker.New(circuitbreaker.DefaultConfig())
	logsRepoWithCB := repository.NewLogsRepositoryWithCircuitBreaker(logsRepo, logsCB)
	loggingService := service.NewLoggingService(logsRepoWithCB)

	profilesRepo := repository.NewStockProfilesRepository(db)
	profilesCB := circuitbreaker.New(circuitbreaker.DefaultConfig())
	profilesRepoWithCB := repository.NewStockProfilesRepositoryWithCircuitBreaker(profilesRepo, profilesCB)
	profilesService := service.NewStockProfilesService(profilesRepoWithCB)

	handler := NewHandler(calculator, profilesService)
	healthHandler := NewHealthHandler()
	healthHandler.RegisterCircuitBreaker("mongodb_stock_profiles", profilesCB)
	healthHandler.RegisterCircuitBreaker("mongodb_logs", logsCB)

	cfg := RouterConfig{
		RateLimit:            100,
		RateWindow:           time.Minute,
		EnableAuth:           false,
		LoggingService:       loggingService,
		StockProfilesService: profilesService,
	}

	return NewRouter(handler, healthHandler, cfg)
}

func TestStockProfilesHandler_Integration(t *testing.T) {
	t.Parallel()

	dbName := sanitizeDBNameForHTTP(t.Name())
	router := setupStockProfilesIntegrationRouter(dbName)

	t.Run("get active profile when none exists", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/stock-profiles/active", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Nil(t, response["data"])
	})

	t.Run("create profile then get active", func(t *testing.T) {
		body := `{"name": "aluminum extrusion 2m", "stock_length": 2000, "length_unit": "mm", "kerf_width": 3.2, "kerf_unit": "mm", "max_bars": 10}`
		req := httptest.NewRequest(http.MethodPost, "/api/stock-profiles", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		req = httptest.NewRequest(http.MethodGet, "/api/stock-profiles/active", nil)
		w = httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		data, ok := response["data"].(map[string]interface{})
		require.True(t, ok, "Response data should be a map")
		assert.Equal(t, "aluminum extrusion 2m", data["name"])
		assert.Equal(t, float64(2000), data["stock_length"])
		assert.Equal(t, true, data["active"])
	})

	t.Run("calculate falls back to active profile", func(t *testing.T) {
		// Profile created above supplies stock parameters
		body := `{"cuts": [{"length": 1500, "quantity": 6}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/calculate", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		data := response["data"].(map[string]interface{})
		plans := data["plans"].([]interface{})
		assert.Len(t, plans, 10)
	})

	t.Run("update profile bumps version", func(t *testing.T) {
		ctx := context.Background()
		uri := getSharedContainerURI()
		testDBName := sanitizeDBNameForHTTP(t.Name())
		db, err := repository.NewMongoDB(uri, testDBName)
		require.NoError(t, err)
		defer func() {
			_ = db.Close(ctx)
		}()

		repo := repository.NewStockProfilesRepository(db)
		created, createErr := repo.Create(ctx, repository.StockProfileFields{
			Name:        "steel 6m",
			StockLength: 6000,
			LengthUnit:  "mm",
			MaxBars:     20,
		}, "test")
		require.NoError(t, createErr)

		testRouter := setupStockProfilesIntegrationRouter(testDBName)

		body := `{"name": "steel 6m", "stock_length": 6100, "length_unit": "mm", "max_bars": 25}`
		req := httptest.NewRequest(http.MethodPut, "/api/stock-profiles/"+created.ID.Hex(), bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		testRouter.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		data := response["data"].(map[string]interface{})
		assert.Equal(t, float64(6100), data["stock_length"])
		assert.Equal(t, float64(2), data["version"])
	})

	t.Run("activate older profile", func(t *testing.T) {
		ctx := context.Background()
		uri := getSharedContainerURI()
		testDBName := sanitizeDBNameForHTTP(t.Name())
		db, err := repository.NewMongoDB(uri, testDBName)
		require.NoError(t, err)
		defer func() {
			_ = db.Close(ctx)
		}()

		repo := repository.NewStockProfilesRepository(db)
		first, err := repo.Create(ctx, repository.StockProfileFields{
			Name:        "first",
			StockLength: 1000,
			LengthUnit:  "mm",
			MaxBars:     5,
		}, "test")
		require.NoError(t, err)
		_, err = repo.Create(ctx, repository.StockProfileFields{
			Name:        "second",
			StockLength: 2000,
			LengthUnit:  "mm",
			MaxBars:     5,
		}, "test")
		require.NoError(t, err)

		testRouter := setupStockProfilesIntegrationRouter(testDBName)

		req := httptest.NewRequest(http.MethodPost, "/api/stock-profiles/"+first.ID.Hex()+"/activate", nil)
		w := httptest.NewRecorder()

		testRouter.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		active, err := repo.GetActive(ctx)
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, "first", active.Name)
	})

	t.Run("list profiles", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/stock-profiles", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
