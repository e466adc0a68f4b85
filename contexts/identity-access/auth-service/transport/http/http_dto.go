package httptransport

import "time"

// BirthDateLayout is the wire format for birth dates.
const BirthDateLayout = "2006-01-02"

type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type PrincipalDTO struct {
	PrincipalID string `json:"principalId"`
	Email       string `json:"email"`
	Name        string `json:"name,omitempty"`
	Role        string `json:"role"`
	TenantID    string `json:"tenantId,omitempty"`
	BirthDate   string `json:"birthDate,omitempty"`
}

type SessionResponse struct {
	Token       string       `json:"token"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	Destination string       `json:"destination,omitempty"`
	Principal   PrincipalDTO `json:"principal"`
}

type BeginExternalLoginRequest struct {
	TenantDomain string `json:"tenantDomain,omitempty"`
	Destination  string `json:"destination,omitempty"`
}

type BeginExternalLoginResponse struct {
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type CompleteExternalLoginRequest struct {
	Key       string `json:"key"`
	Provider  string `json:"provider"`
	SubjectID string `json:"subjectId"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
