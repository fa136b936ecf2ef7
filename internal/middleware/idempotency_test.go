package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const calculateBody = `{"stock_count": 2, "stock_length": 1000, "cuts": [{"length": 400, "quantity": 2}]}`

func idempotencyRouter(cfg IdempotencyConfig, handled *atomic.Int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Idempotency(cfg))
	compute := func(c *gin.Context) {
		if handled != nil {
			handled.Add(1)
		}
		c.JSON(http.StatusOK, gin.H{"result": "plan"})
	}
	router.POST("/api/calculate", compute)
	router.GET("/api/stock-profiles", compute)
	return router
}

func postCalculate(router *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/calculate", bytes.NewReader([]byte(calculateBody)))
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotency_PassThrough(t *testing.T) {
	tests := []struct {
		name   string
		method string
		key    string
	}{
		{
			name:   "post without a key is not cached",
			method: http.MethodPost,
			key:    "",
		},
		{
			name:   "read requests bypass idempotency",
			method: http.MethodGet,
			key:    "profiles-read",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var handled atomic.Int64
			router := idempotencyRouter(DefaultIdempotencyConfig(), &handled)

			for i := 0; i < 2; i++ {
				var req *http.Request
				if tt.method == http.MethodPost {
					req = httptest.NewRequest(tt.method, "/api/calculate", bytes.NewReader([]byte(calculateBody)))
				} else {
					req = httptest.NewRequest(tt.method, "/api/stock-profiles", nil)
				}
				if tt.key != "" {
					req.Header.Set(IdempotencyKeyHeader, tt.key)
				}
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)
				assert.Equal(t, http.StatusOK, w.Code)
			}

			// Both requests reached the handler.
			assert.Equal(t, int64(2), handled.Load())
		})
	}
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	var handled atomic.Int64
	router := idempotencyRouter(DefaultIdempotencyConfig(), &handled)

	first := postCalculate(router, "retry-5412")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Empty(t, first.Header().Get("X-Idempotency-Replayed"))

	second := postCalculate(router, "retry-5412")
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, first.Body.String(), second.Body.String())

	assert.Equal(t, int64(1), handled.Load())
}

func TestIdempotency_DifferentKeysComputeSeparately(t *testing.T) {
	var handled atomic.Int64
	router := idempotencyRouter(DefaultIdempotencyConfig(), &handled)

	postCalculate(router, "order-1")
	postCalculate(router, "order-2")

	assert.Equal(t, int64(2), handled.Load())
}

func TestIdempotency_SameKeyDifferentBody(t *testing.T) {
	var handled atomic.Int64
	router := idempotencyRouter(DefaultIdempotencyConfig(), &handled)

	postCalculate(router, "order-1")

	// Reusing the key with a different payload must not replay.
	req := httptest.NewRequest(http.MethodPost, "/api/calculate",
		bytes.NewReader([]byte(`{"stock_count": 5, "stock_length": 2000, "cuts": [{"length": 1500, "quantity": 1}]}`)))
	req.Header.Set(IdempotencyKeyHeader, "order-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, int64(2), handled.Load())
}

func TestIdempotency_Disabled(t *testing.T) {
	cfg := DefaultIdempotencyConfig()
	cfg.Enabled = false
	cfg.Cache = nil

	var handled atomic.Int64
	router := idempotencyRouter(cfg, &handled)

	postCalculate(router, "retry-5412")
	postCalculate(router, "retry-5412")

	assert.Equal(t, int64(2), handled.Load())
}
