package auth

import (
	"fmt"
	"net/http"
)

// Error is a failed authentication or authorization check. It carries the
// status and the code/description pair reported to the client.
type Error struct {
	Status      int
	Code        string
	Description string
	Cause       error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Description, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

func (e *Error) Unwrap() error            { return e.Cause }
func (e *Error) HTTPStatus() int          { return e.Status }
func (e *Error) ErrorCode() string        { return e.Code }
func (e *Error) ErrorDescription() string { return e.Description }

func newError(status int, code, description string, cause error) *Error {
	return &Error{Status: status, Code: code, Description: description, Cause: cause}
}

// Error codes
const (
	CodeHeaderMissing   = "authorization_header_missing"
	CodeInvalidHeader   = "invalid_header"
	CodeTokenExpired    = "token_expired"
	CodeInvalidClaims   = "invalid_claims"
	CodeUnauthorized    = "unauthorized"
	CodeJWKSUnavailable = "jwks_unavailable"
)

var (
	errHeaderMissing = newError(http.StatusUnauthorized, CodeHeaderMissing, "Authorization header is expected.", nil)
	errNotBearer     = newError(http.StatusUnauthorized, CodeInvalidHeader, "Authorization header must start with 'Bearer'.", nil)
	errTokenMissing  = newError(http.StatusUnauthorized, CodeInvalidHeader, "Token not found.", nil)
	errExtraParts    = newError(http.StatusUnauthorized, CodeInvalidHeader, "Authorization header must be bearer token.", nil)
	errNoKid         = newError(http.StatusUnauthorized, CodeInvalidHeader, "Authorization malformed.", nil)
	errNoPermission  = newError(http.StatusUnauthorized, CodeUnauthorized, "Permission not found.", nil)
)

func errExpired(cause error) *Error {
	return newError(http.StatusUnauthorized, CodeTokenExpired, "Token expired.", cause)
}

func errInvalidClaims(cause error) *Error {
	return newError(http.StatusUnauthorized, CodeInvalidClaims, "Incorrect claims. Please, check the audience and issuer.", cause)
}

func errUnparsable(cause error) *Error {
	return newError(http.StatusBadRequest, CodeInvalidHeader, "Unable to parse authentication token.", cause)
}

func errKeyNotFound(kid string) *Error {
	return newError(http.StatusBadRequest, CodeInvalidHeader, "Unable to find the appropriate key.", fmt.Errorf("kid %q not in key set", kid))
}

func errUnavailable(cause error) *Error {
	return newError(http.StatusServiceUnavailable, CodeJWKSUnavailable, "Unable to fetch the signing keys.", cause)
}
