package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cesargomez89/fullstack/internal/domain"
)

type codedErr struct {
	status int
}

func (e codedErr) Error() string            { return "token rejected" }
func (e codedErr) HTTPStatus() int          { return e.status }
func (e codedErr) ErrorCode() string        { return "invalid_header" }
func (e codedErr) ErrorDescription() string { return "Unable to parse authentication token." }

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		status int
	}{
		{"bad request", BadRequest("malformed JSON", nil), http.StatusBadRequest},
		{"validation", Validation(map[string]string{"name": "name is required"}), http.StatusBadRequest},
		{"not found", NotFound("no drinks"), http.StatusNotFound},
		{"method", MethodNotAllowed(), http.StatusMethodNotAllowed},
		{"unprocessable", Unprocessable("insert failed", nil), http.StatusUnprocessableEntity},
		{"rate limited", TooManyRequests(), http.StatusTooManyRequests},
		{"internal", Internal("boom", nil), http.StatusInternalServerError},
		{"unavailable", Unavailable("jwks down", nil), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus())
			resp := tt.err.ToResponse()
			assert.False(t, resp.Success)
			assert.Equal(t, tt.status, resp.Error)
			assert.Equal(t, StatusMessage(tt.status), resp.Message)
		})
	}
}

func TestStatusMessage(t *testing.T) {
	assert.Equal(t, "Resource Not Found", StatusMessage(http.StatusNotFound))
	assert.Equal(t, "Unprocessable Entity", StatusMessage(http.StatusUnprocessableEntity))
	assert.Equal(t, "Conflict", StatusMessage(http.StatusConflict))
}

func TestError_String(t *testing.T) {
	err := Internal("query failed", fmt.Errorf("db closed"))
	assert.Contains(t, err.Error(), "internal")
	assert.Contains(t, err.Error(), "db closed")

	assert.NotContains(t, NotFound("gone").Error(), "<nil>")
}

func TestFrom(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		mutating bool
		status   int
	}{
		{"not found read", domain.ErrNotFound, false, http.StatusNotFound},
		{"not found write", fmt.Errorf("get drink: %w", domain.ErrNotFound), true, http.StatusNotFound},
		{"conflict", domain.ErrConflict, true, http.StatusUnprocessableEntity},
		{"reference", domain.ErrReference, true, http.StatusUnprocessableEntity},
		{"unknown read", errors.New("disk full"), false, http.StatusInternalServerError},
		{"unknown write", errors.New("disk full"), true, http.StatusUnprocessableEntity},
		{"structured passthrough", NotFound("x"), true, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *Error
			if tt.mutating {
				got = FromMutation(tt.err)
			} else {
				got = From(tt.err)
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.status, got.HTTPStatus())
		})
	}
}

func TestFrom_StatusCoder(t *testing.T) {
	err := fmt.Errorf("verify: %w", codedErr{status: http.StatusBadRequest})

	got := From(err)

	assert.Equal(t, http.StatusBadRequest, got.HTTPStatus())
	resp := got.ToResponse()
	assert.Equal(t, "invalid_header", resp.Code)
	assert.Equal(t, "Unable to parse authentication token.", resp.Description)
	assert.Equal(t, "Bad Request", resp.Message)
}

func TestFrom_Nil(t *testing.T) {
	assert.Nil(t, From(nil))
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, NotFound("x").LogLevel())
	assert.Equal(t, slog.LevelWarn, Unprocessable("x", nil).LogLevel())
	assert.Equal(t, slog.LevelError, Internal("x", nil).LogLevel())
}
