package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"kinkeep/contexts/commerce/billing-service/domain/entities"
	domainerrors "kinkeep/contexts/commerce/billing-service/domain/errors"
	"kinkeep/internal/shared/tenantscope"
)

// Repository implements the billing repositories on gorm/postgres.
// The tenant scope is applied to every query, so a record outside the
// caller's tenant is indistinguishable from a missing one.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return Repository{DB: db}
}

func (r Repository) GetOrder(ctx context.Context, scope tenantscope.Scope, orderID string) (entities.Order, error) {
	var m orderModel
	err := scope.Apply(r.DB.WithContext(ctx)).
		Where("order_id = ?", orderID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Order{}, domainerrors.ErrOrderNotFound
		}
		return entities.Order{}, err
	}
	return orderFromModel(m), nil
}

func (r Repository) ListOrders(ctx context.Context, scope tenantscope.Scope) ([]entities.Order, error) {
	var models []orderModel
	err := scope.Apply(r.DB.WithContext(ctx)).
		Order("created_at asc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Order, 0, len(models))
	for _, m := range models {
		items = append(items, orderFromModel(m))
	}
	return items, nil
}

func (r Repository) CreateOrder(ctx context.Context, order entities.Order) error {
	m := orderToModel(order)
	return r.DB.WithContext(ctx).Create(&m).Error
}

func (r Repository) UpdateOrder(ctx context.Context, scope tenantscope.Scope, order entities.Order) error {
	m := orderToModel(order)
	result := scope.Apply(r.DB.WithContext(ctx).Model(&orderModel{})).
		Where("order_id = ?", order.OrderID).
		Select("*").
		Updates(&m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrOrderNotFound
	}
	return nil
}

func (r Repository) GetPromotion(ctx context.Context, scope tenantscope.Scope, promoID string) (entities.Promotion, error) {
	var m promotionModel
	err := scope.Apply(r.DB.WithContext(ctx)).
		Where("promo_id = ?", promoID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Promotion{}, domainerrors.ErrPromotionNotFound
		}
		return entities.Promotion{}, err
	}
	return promotionFromModel(m), nil
}

func (r Repository) GetPromotionByCode(ctx context.Context, scope tenantscope.Scope, code string) (entities.Promotion, error) {
	var m promotionModel
	err := scope.Apply(r.DB.WithContext(ctx)).
		Where("code = ?", code).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Promotion{}, domainerrors.ErrPromotionNotFound
		}
		return entities.Promotion{}, err
	}
	return promotionFromModel(m), nil
}

func (r Repository) ListPromotions(ctx context.Context, scope tenantscope.Scope) ([]entities.Promotion, error) {
	var models []promotionModel
	err := scope.Apply(r.DB.WithContext(ctx)).
		Order("code asc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Promotion, 0, len(models))
	for _, m := range models {
		items = append(items, promotionFromModel(m))
	}
	return items, nil
}

func (r Repository) CreatePromotion(ctx context.Context, promotion entities.Promotion) error {
	m := promotionToModel(promotion)
	return r.DB.WithContext(ctx).Create(&m).Error
}

func (r Repository) UpdatePromotion(ctx context.Context, scope tenantscope.Scope, promotion entities.Promotion) error {
	m := promotionToModel(promotion)
	result := scope.Apply(r.DB.WithContext(ctx).Model(&promotionModel{})).
		Where("promo_id = ?", promotion.PromoID).
		Select("*").
		Updates(&m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPromotionNotFound
	}
	return nil
}

func (r Repository) DeletePromotion(ctx context.Context, scope tenantscope.Scope, promoID string) error {
	result := scope.Apply(r.DB.WithContext(ctx)).
		Where("promo_id = ?", promoID).
		Delete(&promotionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPromotionNotFound
	}
	return nil
}
