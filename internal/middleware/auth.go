package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chasecee/cut-calc/internal/domain/dto"
	"github.com/chasecee/cut-calc/internal/i18n"
)

const (
	// APIKeyHeader authenticates shop-floor clients that cannot run a JWT
	// login flow.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is the query-parameter fallback for the same key.
	APIKeyQuery = "api_key"
)

// APIKeyAuth gates the API behind a static key set. The header wins over the
// query parameter. An empty key set disables the check entirely.
func APIKeyAuth(validKeys map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(validKeys) == 0 {
			c.Next()
			return
		}

		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			key = c.Query(APIKeyQuery)
		}

		locale := i18n.GetLocale(c)
		requestID := GetRequestID(c)

		if key == "" {
			resp := dto.NewError(dto.ErrCodeUnauthorized, i18n.GetTranslator().Translate(i18n.ErrKeyAPIKeyRequired, locale)).
				WithRequestID(requestID)
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp)
			return
		}

		if !validKeys[key] {
			resp := dto.NewError(dto.ErrCodeUnauthorized, i18n.GetTranslator().Translate(i18n.ErrKeyInvalidAPIKey, locale)).
				WithRequestID(requestID)
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp)
			return
		}

		c.Next()
	}
}
