// errors/approval_errors.go
package errors

import "errors"

var (
	ErrNetworkFailure       = errors.New("status source unreachable")
	ErrAuthorizationFailure = errors.New("status source rejected credentials")
	ErrStatusSuperseded     = errors.New("status resolution superseded by invalidation")
	ErrInvalidPlacementData = errors.New("invalid placement data")
)
