package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chasecee/cut-calc/internal/domain/dto"
	"github.com/chasecee/cut-calc/internal/i18n"
	"github.com/chasecee/cut-calc/internal/service"
)

// JWTAuth guards endpoints behind a bearer token. On success the token's
// subject becomes the request's actor, which the audit log and the
// per-actor rate limiter pick up.
func JWTAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reject := func(messageKey string) {
			message := i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(c))
			resp := dto.NewError(dto.ErrCodeUnauthorized, message).
				WithRequestID(GetRequestID(c))
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp)
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			reject(i18n.ErrKeyTokenRequired)
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			reject(i18n.ErrKeyInvalidToken)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			reject(i18n.ErrKeyTokenRequired)
			return
		}

		claims, err := authService.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			reject(i18n.ErrKeyInvalidToken)
			return
		}

		c.Set("actor", claims.Subject)
		c.Set("claims", claims)
		c.Next()
	}
}
