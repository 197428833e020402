package errors

const (
	HttpInternalError          = "internal_error"
	HttpInvalidJsonError       = "invalid_json"
	HttpValidationError        = "validation_failed"
	HttpInvalidQueryError      = "invalid_query"
	HttpStoreUnavailableError  = "store_unavailable"
	HttpInconsistentStateError = "inconsistent_state"
)

// ErrorResponse is the error response body shared by every HTTP handler.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}

// MessageResponse is the body returned for every ingestion decision, accepted or not.
type MessageResponse struct {
	Message string `json:"message"`
}
