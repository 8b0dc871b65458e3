package errs

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

// Kind separates failures caused by the caller from failures of the service.
type Kind string

const (
	KindClient   Kind = "client"
	KindInternal Kind = "internal"
)

// FieldError is a per-field validation failure.
//
//	{ "field": "name", "error": "is required" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ActionType is a string enum describing what the client should do next.
type ActionType string

const ActionTypeRetry ActionType = "retry"

// Action is an optional hint for the client, e.g. retry after a rate limit.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the error type handlers and services return.
//
// Status decides the response code, Code is the machine readable name.
// Override marks messages that are safe to show as-is in production.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
	Action   *Action      `json:"action"`

	cause error
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Unwrap exposes the error this HTTPError was built from, if any.
func (e *HTTPError) Unwrap() error {
	return e.cause
}

// Is matches any *HTTPError regardless of its fields.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// Kind reports client for 4xx statuses and internal for everything else.
func (e *HTTPError) Kind() Kind {
	if e.Status >= 400 && e.Status < 500 {
		return KindClient
	}
	return KindInternal
}

// WithMessage returns a copy of e with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	cp := *e
	cp.Message = message
	return &cp
}

// WithCause returns a copy of e that unwraps to cause.
func (e *HTTPError) WithCause(cause error) *HTTPError {
	cp := *e
	cp.cause = cause
	return &cp
}

// KindOf classifies any error. Only an *HTTPError with a 4xx status is
// client-kind; unknown errors are internal.
func KindOf(err error) Kind {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Kind()
	}
	return KindInternal
}

// ErrorResponse is the JSON envelope written for every failed request.
type ErrorResponse struct {
	Timestamp  string       `json:"timestamp"`
	StatusCode int          `json:"statusCode"`
	Code       string       `json:"code"`
	Message    string       `json:"message"`
	Override   bool         `json:"override,omitempty"`
	Errors     []FieldError `json:"errors,omitempty"`
	Action     *Action      `json:"action,omitempty"`
}

// NewErrorResponse builds the envelope for e at time now.
func NewErrorResponse(e *HTTPError, now time.Time) ErrorResponse {
	return ErrorResponse{
		Timestamp:  now.UTC().Format(time.RFC3339),
		StatusCode: e.Status,
		Code:       e.Code,
		Message:    e.Message,
		Override:   e.Override,
		Errors:     e.Errors,
		Action:     e.Action,
	}
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}

// StatusCode returns the default code for an HTTP status.
func StatusCode(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}
