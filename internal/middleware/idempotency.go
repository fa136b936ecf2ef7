// Package middleware provides HTTP middleware components for the service.
package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// IdempotencyKeyHeader is the standard header clients use to make plan
	// and profile mutations safely retryable.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL bounds how long a replayed response stays available.
	IdempotencyKeyTTL = 5 * time.Minute
)

// cachedResponse is a stored response ready to be replayed.
type cachedResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	Timestamp  time.Time
}

// IdempotencyConfig holds configuration for the idempotency middleware.
type IdempotencyConfig struct {
	Cache   *idempotencyCache
	TTL     time.Duration
	Enabled bool
}

// DefaultIdempotencyConfig enables replay with a five minute window.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		Cache:   newIdempotencyCache(IdempotencyKeyTTL),
		TTL:     IdempotencyKeyTTL,
		Enabled: true,
	}
}

// Idempotency replays the stored response for a repeated Idempotency-Key.
// Only mutating methods participate; a replayed response carries the
// X-Idempotency-Replayed header.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Cache == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		if !mutatingMethod(c.Request.Method) {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		// The same key with a different body or path is a different request.
		cacheKey := idempotencyFingerprint(key, c.Request)

		if stored, ok := cfg.Cache.Get(cacheKey); ok {
			for k, v := range stored.Headers {
				c.Header(k, v)
			}
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(stored.StatusCode, "application/json", stored.Body)
			c.Abort()
			return
		}

		recorder := &replayRecorder{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
			headers:        make(map[string]string),
		}
		c.Writer = recorder

		c.Next()

		// Only successful outcomes are worth replaying.
		if recorder.statusCode >= 200 && recorder.statusCode < 300 {
			cfg.Cache.Set(cacheKey, &cachedResponse{
				StatusCode: recorder.statusCode,
				Headers:    recorder.headers,
				Body:       recorder.body.Bytes(),
				Timestamp:  time.Now(),
			})
		}
	}
}

func mutatingMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// idempotencyFingerprint hashes the key together with the method, path, and
// body so a reused key cannot replay a different request.
func idempotencyFingerprint(idempotencyKey string, req *http.Request) uint64 {
	hasher := sha256.New()
	hasher.Write([]byte(idempotencyKey))
	hasher.Write([]byte(req.Method))
	hasher.Write([]byte(req.URL.Path))

	if req.Body != nil {
		bodyBytes, _ := io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		hasher.Write(bodyBytes)
	}

	return binary.BigEndian.Uint64(hasher.Sum(nil)[:8])
}

// replayRecorder tees the response into a buffer while it is written.
type replayRecorder struct {
	gin.ResponseWriter
	body       *bytes.Buffer
	statusCode int
	headers    map[string]string
}

func (w *replayRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *replayRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *replayRecorder) Header() http.Header {
	headers := w.ResponseWriter.Header()
	for k, v := range headers {
		if len(v) > 0 {
			w.headers[k] = v[0]
		}
	}
	return headers
}
