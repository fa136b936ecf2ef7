package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chasecee/cut-calc/internal/domain/dto"
	"github.com/chasecee/cut-calc/internal/i18n"
	"github.com/chasecee/cut-calc/internal/middleware"
)

// Handlers respond through pooled DTOs. A calculate endpoint under load
// answers thousands of times a second, so the envelopes are recycled
// instead of reallocated per request.
var (
	successPool = sync.Pool{
		New: func() interface{} { return &dto.SuccessResponse{} },
	}
	errorPool = sync.Pool{
		New: func() interface{} { return &dto.ErrorResponse{} },
	}
)

func acquireSuccess() *dto.SuccessResponse {
	return successPool.Get().(*dto.SuccessResponse)
}

func releaseSuccess(resp *dto.SuccessResponse) {
	*resp = dto.SuccessResponse{}
	successPool.Put(resp)
}

func acquireError() *dto.ErrorResponse {
	return errorPool.Get().(*dto.ErrorResponse)
}

func releaseError(resp *dto.ErrorResponse) {
	*resp = dto.ErrorResponse{}
	errorPool.Put(resp)
}

// RequestBuilder binds request bodies for a single gin context.
type RequestBuilder struct {
	c *gin.Context
}

func NewRequestBuilder(c *gin.Context) *RequestBuilder {
	return &RequestBuilder{c: c}
}

// Bind decodes the JSON body into v.
func (b *RequestBuilder) Bind(v interface{}) error {
	return b.c.ShouldBindJSON(v)
}

// ResponseBuilder writes the service's response envelopes. Envelopes come
// from the pools above and go back once gin has serialized them, which
// happens synchronously inside c.JSON.
type ResponseBuilder struct {
	c *gin.Context
}

func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success writes data wrapped in the success envelope.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	resp := acquireSuccess()
	resp.Data = data
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	b.c.JSON(statusCode, resp)
	releaseSuccess(resp)
}

// SuccessOK writes a 200 envelope.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// SuccessCreated writes a 201 envelope.
func (b *ResponseBuilder) SuccessCreated(data interface{}) {
	b.Success(http.StatusCreated, data)
}

// SuccessAccepted writes a 202 envelope.
func (b *ResponseBuilder) SuccessAccepted(data interface{}) {
	b.Success(http.StatusAccepted, data)
}

// Error writes the error envelope for statusCode, translating messageKey
// into the request's locale. A non-nil err is attached to the context so
// the error handler middleware logs it.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	locale := i18n.GetLocale(b.c)

	resp := acquireError()
	resp.Error = dto.ErrCodeFromStatus(statusCode)
	resp.Message = i18n.GetTranslator().Translate(messageKey, locale)
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	if err != nil {
		_ = b.c.Error(err)
	}

	b.c.AbortWithStatusJSON(statusCode, resp)
	releaseError(resp)
}

// BuildRequest binds the request body into a fresh T.
func BuildRequest[T any](c *gin.Context) (*T, error) {
	var req T
	if err := NewRequestBuilder(c).Bind(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// Validator is implemented by request types that check their own fields.
type Validator interface {
	Validate() error
}

// BuildRequestAndValidate binds the body and runs its Validate method
// when the type has one.
func BuildRequestAndValidate[T any](c *gin.Context) (*T, error) {
	req, err := BuildRequest[T](c)
	if err != nil {
		return nil, err
	}
	if v, ok := any(req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return req, nil
}
