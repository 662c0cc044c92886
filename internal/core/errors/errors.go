package errors

const (
	HttpInternalError        = "internal_error"
	HttpInvalidJsonError     = "invalid_json"
	HttpInvalidQueryError    = "invalid_query"
	HttpRecordValidation     = "record_validation_failed"
	HttpDuplicateRecordError = "duplicate_record"
	HttpUpstreamFetchError   = "record_fetch_failed"
)

// ErrorResponse is the error body returned by every HTTP handler.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
