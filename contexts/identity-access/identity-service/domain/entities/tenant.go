package entities

import "time"

// Tenant is an isolated family unit. Domain is the unique routing key,
// stored lowercased and compared case-insensitively.
type Tenant struct {
	TenantID  string    `json:"tenant_id"`
	Domain    string    `json:"domain"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
