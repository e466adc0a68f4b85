package httptransport

import "time"

// Dates travel as "2006-01-02" strings on the wire.
const BirthDateLayout = "2006-01-02"

type RegisterMemberRequest struct {
	TenantDomain string `json:"tenantDomain"`
	Email        string `json:"email"`
	Username     string `json:"username,omitempty"`
	Password     string `json:"password"`
	Name         string `json:"name,omitempty"`
	BirthDate    string `json:"birthDate,omitempty"`
}

type PrincipalDTO struct {
	PrincipalID string     `json:"principalId"`
	Email       string     `json:"email"`
	Username    string     `json:"username,omitempty"`
	Name        string     `json:"name,omitempty"`
	Role        string     `json:"role"`
	TenantID    string     `json:"tenantId,omitempty"`
	BirthDate   string     `json:"birthDate,omitempty"`
	Active      bool       `json:"active"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type ListPrincipalsResponse struct {
	Principals []PrincipalDTO `json:"principals"`
}

type CreatePrincipalRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username,omitempty"`
	Password  string `json:"password,omitempty"`
	Name      string `json:"name,omitempty"`
	Role      string `json:"role"`
	TenantID  string `json:"tenantId,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`
}

type UpdateProfileRequest struct {
	Name      *string `json:"name,omitempty"`
	Username  *string `json:"username,omitempty"`
	BirthDate *string `json:"birthDate,omitempty"`
}

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

type SetActiveRequest struct {
	Active bool `json:"active"`
}

type TenantDTO struct {
	TenantID  string    `json:"tenantId"`
	Domain    string    `json:"domain"`
	Name      string    `json:"name,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

type ListTenantsResponse struct {
	Tenants []TenantDTO `json:"tenants"`
}

type CreateTenantRequest struct {
	Domain string `json:"domain"`
	Name   string `json:"name,omitempty"`
}

type UpdateTenantRequest struct {
	Domain string `json:"domain,omitempty"`
	Name   string `json:"name,omitempty"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
