package errs

import (
	"net/http"
	"strconv"
	"time"
)

// NewBadRequestError creates a 400 HTTPError.
//
// code defaults to "BAD_REQUEST" when nil. errors and action are optional.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	formattedCode := StatusCode(http.StatusBadRequest)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
		Action:   action,
	}
}

// NewNotFoundError creates a 404 HTTPError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := StatusCode(http.StatusNotFound)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewTooManyRequestsError creates a 429 HTTPError with a retry hint.
func NewTooManyRequestsError(retryAfter time.Duration) *HTTPError {
	return &HTTPError{
		Code:     StatusCode(http.StatusTooManyRequests),
		Message:  "Rate limit exceeded",
		Status:   http.StatusTooManyRequests,
		Override: true,
		Action: &Action{
			Type:    ActionTypeRetry,
			Message: "Retry after the given number of seconds",
			Value:   strconv.Itoa(int(retryAfter.Seconds())),
		},
	}
}

// NewInternalServerError creates a 500 HTTPError with the generic status text.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     StatusCode(http.StatusInternalServerError),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}
