package dto

import (
	"net/http"
	"time"
)

// Machine-readable error codes carried in the error envelope.
const (
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeInternal       = "internal_error"
	ErrCodeUnauthorized   = "unauthorized"
	ErrCodeForbidden      = "forbidden"
	ErrCodeNotFound       = "not_found"
	ErrCodeRateLimit      = "rate_limit_exceeded"
	ErrCodeConflict       = "conflict"
	ErrCodeTimeout        = "timeout"
)

// SuccessResponse is the envelope around every successful payload. For
// the calculate endpoint Data holds a PlanResult.
// @Description Successful API response wrapper
type SuccessResponse struct {
	Data      interface{} `json:"data" swaggertype:"object"`
	RequestID string      `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time   `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse is the envelope for every failure the API reports.
// @Description Standardized error response
type ErrorResponse struct {
	Error     string            `json:"error" example:"invalid_request"`
	Message   string            `json:"message,omitempty" example:"stock_length: must be a positive number"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2025-01-28T10:00:00Z"`
	TraceID   string            `json:"trace_id,omitempty" example:"trace-123"`
} // @name ErrorResponse

// NewError builds a timestamped error envelope.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithRequestID returns a copy carrying the request id.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

var statusErrCodes = map[int]string{
	http.StatusBadRequest:      ErrCodeInvalidRequest,
	http.StatusUnauthorized:    ErrCodeUnauthorized,
	http.StatusForbidden:       ErrCodeForbidden,
	http.StatusNotFound:        ErrCodeNotFound,
	http.StatusConflict:        ErrCodeConflict,
	http.StatusTooManyRequests: ErrCodeRateLimit,
	http.StatusRequestTimeout:  ErrCodeTimeout,
	http.StatusGatewayTimeout:  ErrCodeTimeout,
}

// ErrCodeFromStatus maps an HTTP status to its error code. Statuses
// without a dedicated code report internal_error.
func ErrCodeFromStatus(status int) string {
	if code, ok := statusErrCodes[status]; ok {
		return code
	}
	return ErrCodeInternal
}
