// errors/session_errors.go
package errors

import "errors"

var (
	ErrNoSession           = errors.New("no active session")
	ErrInvalidSessionToken = errors.New("invalid session token")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInternalServer      = errors.New("internal server error")
	ErrSourceMisconfigured = errors.New("status source misconfigured")
)
