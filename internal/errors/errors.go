// Package errors maps failures to HTTP statuses and the JSON error envelope.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cesargomez89/fullstack/internal/domain"
)

// ErrorType is the category of an error, used for status mapping and metrics.
type ErrorType string

const (
	TypeBadRequest       ErrorType = "bad_request"
	TypeValidation       ErrorType = "validation"
	TypeNotFound         ErrorType = "not_found"
	TypeMethodNotAllowed ErrorType = "method_not_allowed"
	TypeUnprocessable    ErrorType = "unprocessable"
	TypeTooManyRequests  ErrorType = "too_many_requests"
	TypeInternal         ErrorType = "internal"
	TypeUnavailable      ErrorType = "unavailable"
)

var statusByType = map[ErrorType]int{
	TypeBadRequest:       http.StatusBadRequest,
	TypeValidation:       http.StatusBadRequest,
	TypeNotFound:         http.StatusNotFound,
	TypeMethodNotAllowed: http.StatusMethodNotAllowed,
	TypeUnprocessable:    http.StatusUnprocessableEntity,
	TypeTooManyRequests:  http.StatusTooManyRequests,
	TypeInternal:         http.StatusInternalServerError,
	TypeUnavailable:      http.StatusServiceUnavailable,
}

// Fixed envelope messages.
var messages = map[int]string{
	http.StatusBadRequest:          "Bad Request",
	http.StatusUnauthorized:        "Unauthorized",
	http.StatusForbidden:           "Forbidden",
	http.StatusNotFound:            "Resource Not Found",
	http.StatusMethodNotAllowed:    "Method Not Allowed",
	http.StatusUnprocessableEntity: "Unprocessable Entity",
	http.StatusTooManyRequests:     "Too Many Requests",
	http.StatusInternalServerError: "Internal Server Error",
	http.StatusServiceUnavailable:  "Service Unavailable",
}

// StatusMessage returns the envelope message for an HTTP status.
func StatusMessage(status int) string {
	if msg, ok := messages[status]; ok {
		return msg
	}
	return http.StatusText(status)
}

// Error is a structured error carrying its type, a log message and,
// optionally, the auth code/description pair or per-field validation messages.
type Error struct {
	Type        ErrorType
	Message     string
	Cause       error
	Code        string
	Description string
	Fields      map[string]string

	// status overrides the type's default status. Auth failures use it,
	// since the same code can be reported as 400 or 401.
	status int
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the response status for the error.
func (e *Error) HTTPStatus() int {
	if e.status != 0 {
		return e.status
	}
	if status, ok := statusByType[e.Type]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// LogLevel is the level the HTTP boundary logs this error at.
func (e *Error) LogLevel() slog.Level {
	switch {
	case e.HTTPStatus() >= http.StatusInternalServerError:
		return slog.LevelError
	case e.Type == TypeUnprocessable:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// Response is the JSON error envelope.
type Response struct {
	Success     bool              `json:"success"`
	Error       int               `json:"error"`
	Message     string            `json:"message"`
	Code        string            `json:"code,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      map[string]string `json:"fields,omitempty"`
}

// ToResponse converts the error to its envelope.
func (e *Error) ToResponse() Response {
	status := e.HTTPStatus()
	return Response{
		Success:     false,
		Error:       status,
		Message:     StatusMessage(status),
		Code:        e.Code,
		Description: e.Description,
		Fields:      e.Fields,
	}
}

func newError(t ErrorType, message string, cause error) *Error {
	return &Error{Type: t, Message: message, Cause: cause}
}

// BadRequest reports a malformed request (HTTP 400).
func BadRequest(message string, cause error) *Error {
	e := newError(TypeBadRequest, message, cause)
	e.Description = message
	return e
}

// Validation reports request fields that failed validation (HTTP 400).
func Validation(fields map[string]string) *Error {
	e := newError(TypeValidation, "validation failed", nil)
	e.Fields = fields
	return e
}

// NotFound reports a missing resource (HTTP 404).
func NotFound(message string) *Error {
	return newError(TypeNotFound, message, nil)
}

// MethodNotAllowed reports a route hit with the wrong verb (HTTP 405).
func MethodNotAllowed() *Error {
	return newError(TypeMethodNotAllowed, "method not allowed", nil)
}

// Unprocessable reports a well formed request that could not be applied (HTTP 422).
func Unprocessable(message string, cause error) *Error {
	return newError(TypeUnprocessable, message, cause)
}

// TooManyRequests reports a rate limited client (HTTP 429).
func TooManyRequests() *Error {
	return newError(TypeTooManyRequests, "rate limit exceeded", nil)
}

// Internal reports a server-side failure (HTTP 500).
func Internal(message string, cause error) *Error {
	return newError(TypeInternal, message, cause)
}

// Unavailable reports a dependency that cannot be reached (HTTP 503).
func Unavailable(message string, cause error) *Error {
	return newError(TypeUnavailable, message, cause)
}

// statusCoder is implemented by errors that know their own status,
// such as token verification failures.
type statusCoder interface {
	HTTPStatus() int
}

type codeDescriber interface {
	ErrorCode() string
	ErrorDescription() string
}

func typeForStatus(status int) ErrorType {
	for t, s := range statusByType {
		if s == status && t != TypeValidation {
			return t
		}
	}
	return TypeInternal
}

// From converts err into a structured error, treating unknown failures as
// read failures (HTTP 500).
func From(err error) *Error {
	return convert(err, false)
}

// FromMutation converts err into a structured error, treating unknown
// failures as a rejected write (HTTP 422).
func FromMutation(err error) *Error {
	return convert(err, true)
}

func convert(err error, mutating bool) *Error {
	if err == nil {
		return nil
	}

	var structured *Error
	if errors.As(err, &structured) {
		return structured
	}

	var sc statusCoder
	if errors.As(err, &sc) {
		status := sc.HTTPStatus()
		e := newError(typeForStatus(status), err.Error(), err)
		e.status = status
		var cd codeDescriber
		if errors.As(err, &cd) {
			e.Code = cd.ErrorCode()
			e.Description = cd.ErrorDescription()
		}
		return e
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return newError(TypeNotFound, "resource not found", err)
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrReference):
		return Unprocessable("write rejected", err)
	}

	if mutating {
		return Unprocessable("write failed", err)
	}
	return Internal("internal server error", err)
}
