package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"kinkeep/contexts/family-core/household-service/domain/entities"
	domainerrors "kinkeep/contexts/family-core/household-service/domain/errors"
	"kinkeep/internal/shared/tenantscope"
)

// Repository implements the household repositories on gorm/postgres.
// The tenant scope is applied to every query, so a record outside the
// caller's tenant is indistinguishable from a missing one.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return Repository{DB: db}
}

func (r Repository) GetChore(ctx context.Context, scope tenantscope.Scope, choreID string) (entities.Chore, error) {
	var m choreModel
	err := scope.Apply(r.DB.WithContext(ctx)).
		Where("chore_id = ?", choreID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Chore{}, domainerrors.ErrChoreNotFound
		}
		return entities.Chore{}, err
	}
	return choreFromModel(m), nil
}

func (r Repository) ListChores(ctx context.Context, scope tenantscope.Scope) ([]entities.Chore, error) {
	var models []choreModel
	err := scope.Apply(r.DB.WithContext(ctx)).
		Order("created_at asc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Chore, 0, len(models))
	for _, m := range models {
		items = append(items, choreFromModel(m))
	}
	return items, nil
}

func (r Repository) CreateChore(ctx context.Context, chore entities.Chore) error {
	m := choreToModel(chore)
	return r.DB.WithContext(ctx).Create(&m).Error
}

func (r Repository) UpdateChore(ctx context.Context, scope tenantscope.Scope, chore entities.Chore) error {
	m := choreToModel(chore)
	result := scope.Apply(r.DB.WithContext(ctx).Model(&choreModel{})).
		Where("chore_id = ?", chore.ChoreID).
		Select("*").
		Updates(&m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrChoreNotFound
	}
	return nil
}

func (r Repository) DeleteChore(ctx context.Context, scope tenantscope.Scope, choreID string) error {
	result := scope.Apply(r.DB.WithContext(ctx)).
		Where("chore_id = ?", choreID).
		Delete(&choreModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrChoreNotFound
	}
	return nil
}

func (r Repository) GetKeyDate(ctx context.Context, scope tenantscope.Scope, keyDateID string) (entities.KeyDate, error) {
	var m keyDateModel
	err := scope.Apply(r.DB.WithContext(ctx)).
		Where("key_date_id = ?", keyDateID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.KeyDate{}, domainerrors.ErrKeyDateNotFound
		}
		return entities.KeyDate{}, err
	}
	return keyDateFromModel(m), nil
}

func (r Repository) ListKeyDates(ctx context.Context, scope tenantscope.Scope) ([]entities.KeyDate, error) {
	var models []keyDateModel
	err := scope.Apply(r.DB.WithContext(ctx)).
		Order("date asc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.KeyDate, 0, len(models))
	for _, m := range models {
		items = append(items, keyDateFromModel(m))
	}
	return items, nil
}

func (r Repository) CreateKeyDate(ctx context.Context, date entities.KeyDate) error {
	m := keyDateToModel(date)
	return r.DB.WithContext(ctx).Create(&m).Error
}

func (r Repository) UpdateKeyDate(ctx context.Context, scope tenantscope.Scope, date entities.KeyDate) error {
	m := keyDateToModel(date)
	result := scope.Apply(r.DB.WithContext(ctx).Model(&keyDateModel{})).
		Where("key_date_id = ?", date.KeyDateID).
		Select("*").
		Updates(&m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrKeyDateNotFound
	}
	return nil
}

func (r Repository) DeleteKeyDate(ctx context.Context, scope tenantscope.Scope, keyDateID string) error {
	result := scope.Apply(r.DB.WithContext(ctx)).
		Where("key_date_id = ?", keyDateID).
		Delete(&keyDateModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrKeyDateNotFound
	}
	return nil
}

func (r Repository) GetWishlistItem(ctx context.Context, scope tenantscope.Scope, itemID string) (entities.WishlistItem, error) {
	var m wishlistItemModel
	err := scope.Apply(r.DB.WithContext(ctx)).
		Where("item_id = ?", itemID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.WishlistItem{}, domainerrors.ErrWishlistItemNotFound
		}
		return entities.WishlistItem{}, err
	}
	return wishlistItemFromModel(m), nil
}

func (r Repository) ListWishlistItems(ctx context.Context, scope tenantscope.Scope) ([]entities.WishlistItem, error) {
	var models []wishlistItemModel
	err := scope.Apply(r.DB.WithContext(ctx)).
		Order("created_at asc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.WishlistItem, 0, len(models))
	for _, m := range models {
		items = append(items, wishlistItemFromModel(m))
	}
	return items, nil
}

func (r Repository) CreateWishlistItem(ctx context.Context, item entities.WishlistItem) error {
	m := wishlistItemToModel(item)
	return r.DB.WithContext(ctx).Create(&m).Error
}

func (r Repository) UpdateWishlistItem(ctx context.Context, scope tenantscope.Scope, item entities.WishlistItem) error {
	m := wishlistItemToModel(item)
	result := scope.Apply(r.DB.WithContext(ctx).Model(&wishlistItemModel{})).
		Where("item_id = ?", item.ItemID).
		Select("*").
		Updates(&m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrWishlistItemNotFound
	}
	return nil
}

func (r Repository) DeleteWishlistItem(ctx context.Context, scope tenantscope.Scope, itemID string) error {
	result := scope.Apply(r.DB.WithContext(ctx)).
		Where("item_id = ?", itemID).
		Delete(&wishlistItemModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrWishlistItemNotFound
	}
	return nil
}
