package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chasecee/cut-calc/internal/domain/dto"
	"github.com/chasecee/cut-calc/internal/i18n"
)

// TimeoutConfig holds configuration for the timeout middleware.
type TimeoutConfig struct {
	// Timeout caps how long a request may run.
	Timeout time.Duration
	// ErrorMessage is the fallback text when no translation is available.
	ErrorMessage string
}

// DefaultTimeoutConfig allows 30 seconds, generous even for plan requests
// with thousands of cut rows.
func DefaultTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{
		Timeout:      30 * time.Second,
		ErrorMessage: "Request timeout",
	}
}

// Timeout bounds request processing. The deadline is installed on the
// request context so downstream calls (profile lookups, log writes) observe
// it; a request that overruns gets a 504 unless it already wrote a response.
func Timeout(cfg TimeoutConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.Timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		var mu sync.Mutex
		var finished bool

		done := make(chan struct{})

		go func() {
			defer func() {
				recover() //nolint:errcheck
				close(done)
			}()
			c.Next()
			mu.Lock()
			finished = true
			mu.Unlock()
		}()

		select {
		case <-done:
			return
		case <-ctx.Done():
			mu.Lock()
			defer mu.Unlock()
			if finished || c.Writer.Written() {
				return
			}

			message := cfg.ErrorMessage
			if translator := i18n.GetTranslator(); translator != nil {
				message = translator.Translate(i18n.ErrKeyTimeout, i18n.GetLocale(c))
			}

			resp := dto.NewError(dto.ErrCodeTimeout, message).
				WithRequestID(GetRequestID(c))
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, resp)
		}
	}
}

// TimeoutWithDuration is shorthand for Timeout with only the budget changed.
func TimeoutWithDuration(timeout time.Duration) gin.HandlerFunc {
	cfg := DefaultTimeoutConfig()
	cfg.Timeout = timeout
	return Timeout(cfg)
}
