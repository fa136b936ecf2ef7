package i18n

// Translation keys for error envelopes. Handlers pass these to the
// response builder, which resolves them against the active locale.
const (
	ErrKeyInvalidRequest     = "error.invalid_request"
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	ErrKeyInternalError      = "error.internal_error"
	ErrKeyUnauthorized       = "error.unauthorized"
	ErrKeyInvalidCredentials = "error.invalid_credentials"
	ErrKeyAPIKeyRequired     = "error.api_key_required"
	ErrKeyInvalidAPIKey      = "error.invalid_api_key"
	ErrKeyForbidden          = "error.forbidden"
	ErrKeyNotFound           = "error.not_found"
	ErrKeyRateLimitExceeded  = "error.rate_limit_exceeded"
	ErrKeyConflict           = "error.conflict"

	// ErrKeyValidationCuts covers rejected stock or cut dimensions,
	// the one domain-specific validation failure with its own message.
	ErrKeyValidationCuts = "error.validation.cuts"

	ErrKeyInvalidToken  = "error.invalid_token"
	ErrKeyTokenRequired = "error.token_required"
	ErrKeyTimeout       = "error.timeout"
)

// Translation keys for success envelopes.
const (
	SuccessKeyPlanCalculated = "success.plan_calculated"
)
