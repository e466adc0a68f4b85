package errors

import "errors"

var (
	ErrUnknownAction    = errors.New("unknown action")
	ErrRoleNotPermitted = errors.New("role not permitted for action")
	ErrAgeRestricted    = errors.New("billing actions require the account holder to be 18 or older")
)
