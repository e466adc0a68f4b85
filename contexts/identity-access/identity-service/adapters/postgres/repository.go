package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"kinkeep/contexts/identity-access/identity-service/domain/entities"
	domainerrors "kinkeep/contexts/identity-access/identity-service/domain/errors"
	"kinkeep/internal/shared/tenantscope"
)

// Repository implements the principal and tenant repository ports on
// PostgreSQL. Uniqueness is enforced by the schema's unique indexes and
// translated into the domain conflict errors.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) GetPrincipal(ctx context.Context, principalID string) (entities.Principal, error) {
	var row principalModel
	err := r.db.WithContext(ctx).
		Where("principal_id = ?", strings.TrimSpace(principalID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Principal{}, domainerrors.ErrPrincipalNotFound
		}
		return entities.Principal{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetPrincipalByIdentifier(ctx context.Context, identifier string) (entities.Principal, error) {
	needle := strings.ToLower(strings.TrimSpace(identifier))
	if needle == "" {
		return entities.Principal{}, domainerrors.ErrPrincipalNotFound
	}

	var row principalModel
	err := r.db.WithContext(ctx).
		Where("lower(email) = ? OR lower(username) = ?", needle, needle).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Principal{}, domainerrors.ErrPrincipalNotFound
		}
		return entities.Principal{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetPrincipalByExternalIdentity(ctx context.Context, provider string, subjectID string) (entities.Principal, error) {
	var link externalIdentityModel
	err := r.db.WithContext(ctx).
		Where("provider = ? AND subject_id = ?", strings.ToLower(strings.TrimSpace(provider)), strings.TrimSpace(subjectID)).
		First(&link).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Principal{}, domainerrors.ErrPrincipalNotFound
		}
		return entities.Principal{}, err
	}
	return r.GetPrincipal(ctx, link.PrincipalID)
}

func (r *Repository) ListPrincipals(ctx context.Context, scope tenantscope.Scope) ([]entities.Principal, error) {
	var rows []principalModel
	if err := scope.Apply(r.db.WithContext(ctx).Model(&principalModel{})).
		Order("email ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]entities.Principal, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CountActivePrincipals(ctx context.Context, tenantID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&principalModel{}).
		Where("tenant_id = ? AND active", strings.TrimSpace(tenantID)).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *Repository) CreatePrincipal(ctx context.Context, principal entities.Principal) error {
	row := principalModelFromEntity(principal)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return translateUniqueViolation(err)
	}
	return nil
}

func (r *Repository) UpdatePrincipal(ctx context.Context, principal entities.Principal) error {
	row := principalModelFromEntity(principal)
	result := r.db.WithContext(ctx).
		Model(&principalModel{}).
		Where("principal_id = ?", row.PrincipalID).
		Updates(map[string]any{
			"email":         row.Email,
			"username":      row.Username,
			"password_hash": row.PasswordHash,
			"name":          row.Name,
			"role":          row.Role,
			"birth_date":    row.BirthDate,
			"active":        row.Active,
			"updated_at":    row.UpdatedAt,
		})
	if result.Error != nil {
		return translateUniqueViolation(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPrincipalNotFound
	}
	return nil
}

func (r *Repository) SetPrincipalActive(ctx context.Context, principalID string, active bool, now time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&principalModel{}).
		Where("principal_id = ?", strings.TrimSpace(principalID)).
		Updates(map[string]any{
			"active":     active,
			"updated_at": now.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPrincipalNotFound
	}
	return nil
}

func (r *Repository) DeletePrincipal(ctx context.Context, principalID string) error {
	principalID = strings.TrimSpace(principalID)

	var links int64
	if err := r.db.WithContext(ctx).
		Model(&externalIdentityModel{}).
		Where("principal_id = ?", principalID).
		Count(&links).
		Error; err != nil {
		return err
	}
	if links > 0 {
		return domainerrors.ErrPrincipalHasDependents
	}

	result := r.db.WithContext(ctx).
		Where("principal_id = ?", principalID).
		Delete(&principalModel{})
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return domainerrors.ErrPrincipalHasDependents
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPrincipalNotFound
	}
	return nil
}

func (r *Repository) LinkExternalIdentity(ctx context.Context, link entities.ExternalIdentity) error {
	row := externalIdentityModel{
		Provider:    strings.ToLower(strings.TrimSpace(link.Provider)),
		SubjectID:   strings.TrimSpace(link.SubjectID),
		PrincipalID: strings.TrimSpace(link.PrincipalID),
		LinkedAt:    link.LinkedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrExternalIdentityConflict
		}
		return err
	}
	return nil
}

func (r *Repository) RecordLogin(ctx context.Context, principalID string, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&principalModel{}).
		Where("principal_id = ?", strings.TrimSpace(principalID)).
		Update("last_login_at", at.UTC())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPrincipalNotFound
	}
	return nil
}

func (r *Repository) GetTenant(ctx context.Context, tenantID string) (entities.Tenant, error) {
	var row tenantModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", strings.TrimSpace(tenantID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Tenant{}, domainerrors.ErrTenantNotFound
		}
		return entities.Tenant{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetTenantByDomain(ctx context.Context, domain string) (entities.Tenant, error) {
	var row tenantModel
	err := r.db.WithContext(ctx).
		Where("lower(domain) = ?", strings.ToLower(strings.TrimSpace(domain))).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Tenant{}, domainerrors.ErrTenantNotFound
		}
		return entities.Tenant{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListTenants(ctx context.Context) ([]entities.Tenant, error) {
	var rows []tenantModel
	if err := r.db.WithContext(ctx).
		Order("domain ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]entities.Tenant, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CreateTenant(ctx context.Context, tenant entities.Tenant) error {
	row := tenantModelFromEntity(tenant)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDomainConflict
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateTenant(ctx context.Context, tenant entities.Tenant) error {
	row := tenantModelFromEntity(tenant)
	result := r.db.WithContext(ctx).
		Model(&tenantModel{}).
		Where("tenant_id = ?", row.TenantID).
		Updates(map[string]any{
			"domain":     row.Domain,
			"name":       row.Name,
			"active":     row.Active,
			"updated_at": row.UpdatedAt,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerrors.ErrDomainConflict
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrTenantNotFound
	}
	return nil
}

func (r *Repository) SetTenantActive(ctx context.Context, tenantID string, active bool, now time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&tenantModel{}).
		Where("tenant_id = ?", strings.TrimSpace(tenantID)).
		Updates(map[string]any{
			"active":     active,
			"updated_at": now.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrTenantNotFound
	}
	return nil
}

func (r *Repository) DeleteTenant(ctx context.Context, tenantID string) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ?", strings.TrimSpace(tenantID)).
		Delete(&tenantModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrTenantNotFound
	}
	return nil
}

// translateUniqueViolation maps constraint names onto the distinct conflict
// errors so callers can tell email from username collisions.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "email"):
		return domainerrors.ErrEmailConflict
	case strings.Contains(pgErr.ConstraintName, "username"):
		return domainerrors.ErrUsernameConflict
	case strings.Contains(pgErr.ConstraintName, "domain"):
		return domainerrors.ErrDomainConflict
	default:
		return err
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
