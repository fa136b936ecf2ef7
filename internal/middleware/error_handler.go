package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chasecee/cut-calc/internal/domain/dto"
	"github.com/chasecee/cut-calc/internal/i18n"
	"github.com/chasecee/cut-calc/internal/logger"
)

// ErrorHandler is the last line for errors handlers attached to the gin
// context instead of writing a response themselves. It logs the error and,
// when nothing was written, answers with a localized 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last()
		requestID := GetRequestID(c)

		log := logger.Logger()
		log.Error().
			Str("request_id", requestID).
			Str("error", err.Error()).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Request error")

		if !c.Writer.Written() {
			locale := i18n.GetLocale(c)
			message := i18n.GetTranslator().Translate(i18n.ErrKeyInternalError, locale)
			resp := dto.NewError(dto.ErrCodeInternal, message).
				WithRequestID(requestID)
			c.JSON(http.StatusInternalServerError, resp)
		}
	}
}
