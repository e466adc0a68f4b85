package entities

import (
	"time"

	"kinkeep/internal/shared/authctx"
)

// Principal is the durable record of a person known to the platform.
// PasswordHash is empty for identities created through an external provider.
// TenantID is empty exactly when Role is platform_owner.
type Principal struct {
	PrincipalID  string       `json:"principal_id"`
	Email        string       `json:"email"`
	Username     string       `json:"username,omitempty"`
	PasswordHash string       `json:"-"`
	Name         string       `json:"name"`
	Role         authctx.Role `json:"role"`
	TenantID     string       `json:"tenant_id,omitempty"`
	BirthDate    *time.Time   `json:"birth_date,omitempty"`
	Active       bool         `json:"active"`
	LastLoginAt  *time.Time   `json:"last_login_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Context projects the durable record into the per-request authorization
// shape. This is the only place that conversion happens.
func (p Principal) Context() authctx.Principal {
	return authctx.Principal{
		PrincipalID: p.PrincipalID,
		Email:       p.Email,
		Name:        p.Name,
		Role:        p.Role,
		TenantID:    p.TenantID,
		BirthDate:   p.BirthDate,
	}
}
