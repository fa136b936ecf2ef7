package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chasecee/cut-calc/internal/domain/model"
	"github.com/chasecee/cut-calc/internal/service"
)

// GetActor returns the authenticated actor for the request, or an empty
// string for anonymous callers.
func GetActor(c *gin.Context) string {
	if actor, exists := c.Get("actor"); exists {
		if name, ok := actor.(string); ok {
			return name
		}
	}
	return ""
}

// AuditLog records who did what for sensitive operations such as logins
// and stock profile changes. The write happens off the request goroutine.
func AuditLog(loggingService service.LoggingService, c *gin.Context, actionType, message string, fields map[string]interface{}) {
	persistAudit(loggingService, auditEntry(c, "info", actionType, message, fields))
}

// AuditLogError records a failed sensitive operation together with its error.
func AuditLogError(loggingService service.LoggingService, c *gin.Context, actionType, message string, err error, fields map[string]interface{}) {
	entry := auditEntry(c, "error", actionType, message, fields)
	entry.Error = err.Error()
	persistAudit(loggingService, entry)
}

func auditEntry(c *gin.Context, level, actionType, message string, fields map[string]interface{}) *model.LogEntry {
	return &model.LogEntry{
		Timestamp:  time.Now(),
		Level:      level,
		Message:    message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		ActionType: actionType,
		Actor:      GetActor(c),
		Fields:     fields,
	}
}

func persistAudit(loggingService service.LoggingService, entry *model.LogEntry) {
	if loggingService == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = loggingService.CreateLog(ctx, entry)
	}()
}
