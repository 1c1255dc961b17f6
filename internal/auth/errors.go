package auth

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes reported by the gate.
const (
	CodeHeaderMissing    = "authorization_header_missing"
	CodeInvalidHeader    = "invalid_header"
	CodeTokenExpired     = "token_expired"
	CodeInvalidClaims    = "invalid_claims"
	CodeInvalidSignature = "invalid_signature"
	CodeInvalidToken     = "invalid_token"
	CodeUnauthorized     = "unauthorized"
)

// Error is an authorization failure.
type Error struct {
	Code        string
	Description string
	Status      int
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// NewError creates an Error.
func NewError(code, description string, status int) *Error {
	return &Error{Code: code, Description: description, Status: status}
}

// AsError extracts an *Error from err.
func AsError(err error) (*Error, bool) {
	var authErr *Error
	if errors.As(err, &authErr) {
		return authErr, true
	}
	return nil, false
}

var (
	errHeaderMissing = NewError(CodeHeaderMissing, "Authorization header is expected.", http.StatusUnauthorized)
	errNotBearer     = NewError(CodeInvalidHeader, `Authorization header must start with "Bearer".`, http.StatusUnauthorized)
	errTokenNotFound = NewError(CodeInvalidHeader, "Token not found.", http.StatusUnauthorized)
	errNotSingle     = NewError(CodeInvalidHeader, "Authorization header must be bearer token.", http.StatusUnauthorized)

	errMalformed     = NewError(CodeInvalidHeader, "Authorization malformed.", http.StatusUnauthorized)
	errUnparseable   = NewError(CodeInvalidHeader, "Unable to parse authentication token.", http.StatusBadRequest)
	errNoKey         = NewError(CodeInvalidHeader, "Unable to find the appropriate key.", http.StatusBadRequest)
	errExpired       = NewError(CodeTokenExpired, "Token expired.", http.StatusUnauthorized)
	errBadClaims     = NewError(CodeInvalidClaims, "Incorrect claims. Please, check the audience and issuer.", http.StatusUnauthorized)
	errBadSignature  = NewError(CodeInvalidSignature, "Token signature is invalid.", http.StatusUnauthorized)
	errInvalid       = NewError(CodeInvalidToken, "Token is invalid.", http.StatusUnauthorized)
	errNoPermissions = NewError(CodeInvalidClaims, "Permissions not included in JWT.", http.StatusBadRequest)
	errMissingGrant  = NewError(CodeUnauthorized, "Permission not found.", http.StatusForbidden)
)
