package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chasecee/cut-calc/internal/domain/dto"
	"github.com/chasecee/cut-calc/internal/i18n"
	"github.com/chasecee/cut-calc/internal/middleware"
	"github.com/chasecee/cut-calc/internal/service"
)

// AuthHandler provides HTTP handlers for authentication.
type AuthHandler struct {
	authService    service.AuthService
	loggingService service.LoggingService
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(authService service.AuthService, loggingService service.LoggingService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		loggingService: loggingService,
	}
}

// Login handles POST /api/auth/login requests.
//
// @Summary      Authenticate as administrator
// @Description  Verifies the admin credentials and returns a JWT access token for stock profile management endpoints
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Admin credentials"
// @Success      200 {object} dto.SuccessResponse{data=dto.LoginResponse} "Successful authentication"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid credentials"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	token, expiresIn, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			middleware.AuditLogError(h.loggingService, c, "login_failed", "Login failed", err, map[string]interface{}{
				"username": req.Username,
			})
			builder.Error(http.StatusUnauthorized, i18n.ErrKeyInvalidCredentials, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	middleware.AuditLog(h.loggingService, c, "login", "Administrator logged in", map[string]interface{}{
		"username": req.Username,
	})

	builder.SuccessOK(dto.LoginResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}
