package postgresadapter

import (
	"strings"
	"time"

	"kinkeep/contexts/identity-access/identity-service/domain/entities"
	"kinkeep/internal/shared/authctx"
)

type principalModel struct {
	PrincipalID string  `gorm:"column:principal_id;primaryKey"`
	Email       string  `gorm:"column:email;uniqueIndex:ux_principals_email"`
	Username    *string `gorm:"column:username;uniqueIndex:ux_principals_tenant_username"`
	// Stored as the empty string (not NULL) for platform owners so the
	// composite unique index still applies to them; NULLs never collide
	// under Postgres index semantics.
	TenantID     string     `gorm:"column:tenant_id;not null;default:'';uniqueIndex:ux_principals_tenant_username;index"`
	PasswordHash string     `gorm:"column:password_hash"`
	Name         string     `gorm:"column:name"`
	Role         string     `gorm:"column:role"`
	BirthDate    *time.Time `gorm:"column:birth_date"`
	Active       bool       `gorm:"column:active"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (principalModel) TableName() string {
	return "principals"
}

func principalModelFromEntity(item entities.Principal) principalModel {
	row := principalModel{
		PrincipalID:  strings.TrimSpace(item.PrincipalID),
		Email:        strings.ToLower(strings.TrimSpace(item.Email)),
		TenantID:     strings.TrimSpace(item.TenantID),
		PasswordHash: item.PasswordHash,
		Name:         strings.TrimSpace(item.Name),
		Role:         string(item.Role),
		BirthDate:    item.BirthDate,
		Active:       item.Active,
		LastLoginAt:  item.LastLoginAt,
		CreatedAt:    item.CreatedAt.UTC(),
		UpdatedAt:    item.UpdatedAt.UTC(),
	}
	if username := strings.TrimSpace(item.Username); username != "" {
		row.Username = &username
	}
	return row
}

func (m principalModel) toEntity() entities.Principal {
	item := entities.Principal{
		PrincipalID:  m.PrincipalID,
		Email:        m.Email,
		TenantID:     m.TenantID,
		PasswordHash: m.PasswordHash,
		Name:         m.Name,
		Role:         authctx.Role(m.Role),
		BirthDate:    m.BirthDate,
		Active:       m.Active,
		LastLoginAt:  m.LastLoginAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Username != nil {
		item.Username = *m.Username
	}
	return item
}

type tenantModel struct {
	TenantID  string    `gorm:"column:tenant_id;primaryKey"`
	Domain    string    `gorm:"column:domain;uniqueIndex:ux_tenants_domain"`
	Name      string    `gorm:"column:name"`
	Active    bool      `gorm:"column:active"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (tenantModel) TableName() string {
	return "tenants"
}

func tenantModelFromEntity(item entities.Tenant) tenantModel {
	return tenantModel{
		TenantID:  strings.TrimSpace(item.TenantID),
		Domain:    strings.ToLower(strings.TrimSpace(item.Domain)),
		Name:      strings.TrimSpace(item.Name),
		Active:    item.Active,
		CreatedAt: item.CreatedAt.UTC(),
		UpdatedAt: item.UpdatedAt.UTC(),
	}
}

func (m tenantModel) toEntity() entities.Tenant {
	return entities.Tenant{
		TenantID:  m.TenantID,
		Domain:    m.Domain,
		Name:      m.Name,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type externalIdentityModel struct {
	Provider    string    `gorm:"column:provider;primaryKey"`
	SubjectID   string    `gorm:"column:subject_id;primaryKey"`
	PrincipalID string    `gorm:"column:principal_id;index"`
	LinkedAt    time.Time `gorm:"column:linked_at"`
}

func (externalIdentityModel) TableName() string {
	return "principal_external_identities"
}

// Models lists the gorm models owned by this adapter for schema migration.
func Models() []any {
	return []any{&principalModel{}, &tenantModel{}, &externalIdentityModel{}}
}
