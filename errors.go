package ultrahuman

import (
	"errors"
	"fmt"
	"net/http"
)

// Local validation errors, returned before any request is sent.
var (
	// ErrMissingAPIKey is returned by New when no key was passed and
	// the ULTRAHUMAN_API_KEY environment variable is unset.
	ErrMissingAPIKey = errors.New("api key not provided and not found in environment")

	// ErrInvalidQuery is returned by DailyMetrics when the query does
	// not select exactly one of a date or a complete epoch range.
	ErrInvalidQuery = errors.New("either a date or both start and end epochs must be provided")
)

// Remote error sentinels, for branching on error kind with errors.Is.
// Every non-2xx response wraps ErrUnexpectedStatusCode; the mapped
// statuses additionally wrap their specific sentinel.
var (
	ErrUnexpectedStatusCode = errors.New("received unexpected status code")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrBadRequest           = errors.New("bad request")
	ErrNotFound             = errors.New("resource not found")
	ErrInternalServer       = errors.New("internal server error")
)

// APIError is returned for non-2xx responses and for requests that
// never produced a response. StatusCode is 0 when the failure happened
// before a status was received.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("[%d] %s", e.StatusCode, e.Message)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// ParseError is returned when a 2xx response body cannot be decoded,
// or when the payload of a known metric type fails schema validation.
// It is the only error kind surfaced for parsing failures.
type ParseError struct {
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse response: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// newAPIError maps a status code to the error taxonomy. An empty
// message falls back to a description of the status.
func newAPIError(statusCode int, message string) *APIError {
	var sentinel error
	var fallback string

	switch statusCode {
	case http.StatusUnauthorized:
		sentinel = ErrAuthenticationFailed
		fallback = "Authentication failed. Please check your API key."
	case http.StatusBadRequest:
		sentinel = ErrBadRequest
		fallback = "Bad request. Please check your parameters."
	case http.StatusNotFound:
		sentinel = ErrNotFound
		fallback = "Resource not found. User may not exist or data sharing permission may be missing."
	case http.StatusInternalServerError:
		sentinel = ErrInternalServer
		fallback = "Internal server error. Something went wrong on Ultrahuman's end."
	default:
		fallback = http.StatusText(statusCode)
		if fallback == "" {
			fallback = "Unknown error"
		}
	}

	if message == "" {
		message = fallback
	}

	err := ErrUnexpectedStatusCode
	if sentinel != nil {
		err = fmt.Errorf("%w: %w", sentinel, ErrUnexpectedStatusCode)
	}

	return &APIError{
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}
