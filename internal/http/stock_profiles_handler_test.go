package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chasecee/cut-calc/internal/domain/dto"
	"github.com/chasecee/cut-calc/internal/mocks"
	"github.com/chasecee/cut-calc/internal/repository"
	"github.com/chasecee/cut-calc/internal/service"
)

func setupProfilesRouter() (*gin.Engine, *mocks.MockStockProfilesRepositoryInterface) {
	repo := &mocks.MockStockProfilesRepositoryInterface{}
	profilesService := service.NewStockProfilesService(repo)

	calculator := service.NewPlanCalculatorService()
	handler := NewHandler(calculator, profilesService)
	healthHandler := NewHealthHandler()

	cfg := DefaultRouterConfig()
	cfg.StockProfilesService = profilesService
	return NewRouter(handler, healthHandler, cfg), repo
}

func profileFixture() *repository.StockProfileConfig {
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

func TestGetActiveStockProfile(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*mocks.MockStockProfilesRepositoryInterface)
		expectedStatus int
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "active profile exists",
			setupMock: func(repo *mocks.MockStockProfilesRepositoryInterface) {
				repo.On("GetActive", mock.Anything).Return(profileFixture(), nil)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp dto.SuccessResponse
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

				dataBytes, _ := json.Marshal(resp.Data)
				var profile repository.StockProfileConfig
				assert.NoError(t, json.Unmarshal(dataBytes, &profile))
				assert.Equal(t, "aluminum extrusion 2m", profile.Name)
				assert.Equal(t, 2000.0, profile.StockLength)
				assert.True(t, profile.Active)
			},
		},
		{
			name: "no active profile",
			setupMock: func(repo *mocks.MockStockProfilesRepositoryInterface) {
				repo.On("GetActive", mock.Anything).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp dto.SuccessResponse
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Nil(t, resp.Data)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, repo := setupProfilesRouter()
			tt.setupMock(repo)

			req := httptest.NewRequest(http.MethodGet, "/api/stock-profiles/active", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestListStockProfiles(t *testing.T) {
	router, repo := setupProfilesRouter()

	profiles := []repository.StockProfileConfig{*profileFixture(), *profileFixture()}
	repo.On("List", mock.Anything, 5).Return(profiles, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/stock-profiles?limit=5", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.SuccessResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	dataBytes, _ := json.Marshal(resp.Data)
	var listed []repository.StockProfileConfig
	assert.NoError(t, json.Unmarshal(dataBytes, &listed))
	assert.Len(t, listed, 2)
	repo.AssertExpectations(t)
}

func TestListStockProfiles_DefaultLimit(t *testing.T) {
	router, repo := setupProfilesRouter()

	repo.On("List", mock.Anything, 10).Return([]repository.StockProfileConfig{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/stock-profiles", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestCreateStockProfile(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*mocks.MockStockProfilesRepositoryInterface)
		expectedStatus int
	}{
		{
			name: "valid profile",
			body: `{"name": "steel 6m", "stock_length": 6000, "length_unit": "mm", "kerf_width": 2.5, "kerf_unit": "mm", "max_bars": 20}`,
			setupMock: func(repo *mocks.MockStockProfilesRepositoryInterface) {
				created := profileFixture()
				created.Name = "steel 6m"
				repo.On("Create", mock.Anything, repository.StockProfileFields{
					Name:        "steel 6m",
					StockLength: 6000,
					LengthUnit:  "mm",
					KerfWidth:   2.5,
					KerfUnit:    "mm",
					MaxBars:     20,
				}, "").Return(created, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing name",
			body:           `{"stock_length": 6000, "max_bars": 20}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "non-positive stock length",
			body:           `{"name": "bad", "stock_length": 0, "max_bars": 20}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown unit",
			body:           `{"name": "bad", "stock_length": 6000, "length_unit": "cubit", "max_bars": 20}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "zero max bars",
			body:           `{"name": "bad", "stock_length": 6000, "max_bars": 0}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, repo := setupProfilesRouter()
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/stock-profiles", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			repo.AssertExpectations(t)
		})
	}
}

func TestUpdateStockProfile(t *testing.T) {
	router, repo := setupProfilesRouter()

	id := primitive.NewObjectID()
	updated := profileFixture()
	updated.ID = id
	updated.Version = 2
	repo.On("Update", mock.Anything, id, mock.AnythingOfType("repository.StockProfileFields"), "").Return(updated, nil)

	body := `{"name": "aluminum extrusion 2m", "stock_length": 2000, "kerf_width": 3.0, "max_bars": 12}`
	req := httptest.NewRequest(http.MethodPut, "/api/stock-profiles/"+id.Hex(), bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.SuccessResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	dataBytes, _ := json.Marshal(resp.Data)
	var profile repository.StockProfileConfig
	assert.NoError(t, json.Unmarshal(dataBytes, &profile))
	assert.Equal(t, 2, profile.Version)
	repo.AssertExpectations(t)
}

func TestUpdateStockProfile_InvalidID(t *testing.T) {
	router, _ := setupProfilesRouter()

	body := `{"name": "x", "stock_length": 2000, "max_bars": 12}`
	req := httptest.NewRequest(http.MethodPut, "/api/stock-profiles/not-an-object-id", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestActivateStockProfile(t *testing.T) {
	router, repo := setupProfilesRouter()

	id := primitive.NewObjectID()
	activated := profileFixture()
	activated.ID = id
	repo.On("Activate", mock.Anything, id).Return(activated, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/stock-profiles/"+id.Hex()+"/activate", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestActivateStockProfile_InvalidID(t *testing.T) {
	router, _ := setupProfilesRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/stock-profiles/xyz/activate", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
