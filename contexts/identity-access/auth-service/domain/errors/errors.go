package errors

import "errors"

// Authentication failures are deliberately coarse before a session is
// established and specific afterwards. ErrInvalidCredential covers every
// pre-session failure mode so callers cannot probe for accounts.
var (
	ErrInvalidCredential = errors.New("invalid credential")
	ErrSessionExpired    = errors.New("session expired")
	ErrAccountDisabled   = errors.New("account disabled")
	ErrTenantDisabled    = errors.New("tenant disabled")

	ErrPrincipalUnknown = errors.New("principal unknown")
	ErrTenantUnknown    = errors.New("tenant unknown")

	ErrPendingLoginNotFound = errors.New("pending login not found")
	ErrPendingLoginExpired  = errors.New("pending login expired")
	ErrInvalidPendingLogin  = errors.New("invalid pending login request")
)
