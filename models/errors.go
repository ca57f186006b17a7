package models

import "fmt"

// Error codes used in API responses and internal error handling.
//
// Network-level failures and remote rejections share the same retry
// behavior; the codes exist so the final failure message can tell the
// user what actually went wrong.
const (
	ErrCodeInvalidInput = "INVALID_INPUT"

	ErrCodeDNSFailure        = "DNS_FAILURE"
	ErrCodeConnectionRefused = "CONNECTION_REFUSED"
	ErrCodeTimeout           = "TIMEOUT"
	ErrCodeNetwork           = "NETWORK_ERROR"

	ErrCodeForbidden   = "FORBIDDEN"
	ErrCodeNotFound    = "NOT_FOUND"
	ErrCodeServerError = "SERVER_ERROR"
	ErrCodeHTTPError   = "HTTP_ERROR"

	ErrCodeInsufficientContent = "INSUFFICIENT_CONTENT"
	ErrCodeExhausted           = "RETRIES_EXHAUSTED"

	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeInternal     = "INTERNAL_ERROR"

	ErrCodeStorage = "STORAGE_FAILURE"
)

// ErrorDetail is the structured error in API responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ScrapeError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type ScrapeError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// NewScrapeError creates a new ScrapeError.
func NewScrapeError(code, message string, err error) *ScrapeError {
	return &ScrapeError{Code: code, Message: message, Err: err}
}

// ToDetail converts an internal error to an API-facing ErrorDetail.
func (e *ScrapeError) ToDetail() *ErrorDetail {
	return &ErrorDetail{Code: e.Code, Message: e.Message}
}
