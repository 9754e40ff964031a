package cosmic

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Common static errors that can be wrapped with context.
var (
	ErrMissingIdentifier  = errors.New("missing identifier")
	ErrBucketSlugRequired = errors.New("bucket slug is required")
	ErrWriteKeyRequired   = errors.New("write key is required")
	ErrConfigRequired     = errors.New("config is required")
	ErrUnknownOperation   = errors.New("unknown operation")
	ErrPromptRequired     = errors.New("prompt is required")
	ErrTitleRequired      = errors.New("title is required")
	ErrUploadDataRequired = errors.New("upload data is required")
	ErrInvalidBaseURL     = errors.New("invalid base URL")
)

// TransportError is a failure to exchange a request with the service. It is
// never retried.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error { return e.Err }

// DecodingError is a response body that did not match the expected shape.
type DecodingError struct {
	Target string
	Body   []byte
	Err    error
}

// Error implements the error interface.
func (e *DecodingError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.Target, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DecodingError) Unwrap() error { return e.Err }

// ErrorType classifies a RemoteError.
type ErrorType string

const (
	ErrorTypeInvalidCredentials ErrorType = "INVALID_CREDENTIALS"
	ErrorTypeNotFound           ErrorType = "NOT_FOUND"
	ErrorTypeValidation         ErrorType = "VALIDATION_ERROR"
	ErrorTypeRateLimited        ErrorType = "RATE_LIMIT_EXCEEDED"
	ErrorTypeServerError        ErrorType = "SERVER_ERROR"
	ErrorTypeUnknown            ErrorType = "UNKNOWN_ERROR"
)

// RemoteError is an error reported by the service.
type RemoteError struct {
	Status     int              `json:"status"            yaml:"status"`
	Type       ErrorType        `json:"type"              yaml:"type"`
	Message    string           `json:"message"           yaml:"message"`
	Details    map[string]Value `json:"details,omitempty" yaml:"details,omitempty"`
	HTTPStatus int              `json:"-"                 yaml:"-"`
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s (status: %d)", e.Type, e.HTTPStatus)
	}

	return fmt.Sprintf("%s: %s (status: %d)", e.Type, e.Message, e.HTTPStatus)
}

// ParseRemoteError builds a RemoteError from a failed response. A body that
// is not JSON is kept as the message. A missing or unrecognized type is
// derived from the HTTP status.
func ParseRemoteError(httpStatus int, body []byte) *RemoteError {
	remote := &RemoteError{}

	switch {
	case !json.Valid(body):
		remote.Message = strings.TrimSpace(string(body))
	case json.Unmarshal(body, remote) != nil:
		remote = &RemoteError{Message: legacyMessage(body)}
	case remote.Type == "" && remote.Message == "":
		remote.Message = legacyMessage(body)
	}

	if remote.Status == 0 {
		remote.Status = httpStatus
	}

	if !remote.Type.known() {
		remote.Type = errorTypeForStatus(httpStatus)
	}

	remote.HTTPStatus = httpStatus

	return remote
}

// legacyMessage extracts {"message": ...} or {"error": ...} from bodies that
// predate the typed envelope.
func legacyMessage(body []byte) string {
	var legacy struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	if json.Unmarshal(body, &legacy) != nil {
		return ""
	}

	if legacy.Message != "" {
		return legacy.Message
	}

	return legacy.Error
}

func (t ErrorType) known() bool {
	switch t {
	case ErrorTypeInvalidCredentials, ErrorTypeNotFound, ErrorTypeValidation,
		ErrorTypeRateLimited, ErrorTypeServerError, ErrorTypeUnknown:
		return true
	default:
		return false
	}
}

func errorTypeForStatus(status int) ErrorType {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrorTypeInvalidCredentials
	case status == http.StatusNotFound:
		return ErrorTypeNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return ErrorTypeValidation
	case status == http.StatusTooManyRequests:
		return ErrorTypeRateLimited
	case status >= http.StatusInternalServerError:
		return ErrorTypeServerError
	default:
		return ErrorTypeUnknown
	}
}

func hasType(err error, errorType ErrorType) bool {
	remote := &RemoteError{}
	if errors.As(err, &remote) {
		return remote.Type == errorType
	}

	return false
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool { return hasType(err, ErrorTypeNotFound) }

// IsInvalidCredentials checks if the service rejected the keys.
func IsInvalidCredentials(err error) bool { return hasType(err, ErrorTypeInvalidCredentials) }

// IsValidation checks if the service rejected the request payload.
func IsValidation(err error) bool { return hasType(err, ErrorTypeValidation) }

// IsRateLimited checks if the request was throttled.
func IsRateLimited(err error) bool { return hasType(err, ErrorTypeRateLimited) }

// IsServerError checks if the service failed internally.
func IsServerError(err error) bool { return hasType(err, ErrorTypeServerError) }

// IsMissingIdentifier checks if a per-id operation was called without an id.
func IsMissingIdentifier(err error) bool { return errors.Is(err, ErrMissingIdentifier) }
