package postgres

import (
	"time"

	"kinkeep/contexts/commerce/billing-service/domain/entities"
)

type orderModel struct {
	OrderID     string `gorm:"primaryKey;column:order_id"`
	TenantID    string `gorm:"column:tenant_id;index:ix_orders_tenant"`
	CreatedBy   string `gorm:"column:created_by"`
	Description string `gorm:"column:description"`
	AmountCents int64  `gorm:"column:amount_cents"`
	Currency    string `gorm:"column:currency"`
	PromoCode   string `gorm:"column:promo_code"`
	Status      string `gorm:"column:status"`
	ReceiptID   string `gorm:"column:receipt_id"`
	PaidAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (orderModel) TableName() string { return "orders" }

type promotionModel struct {
	PromoID    string `gorm:"primaryKey;column:promo_id"`
	TenantID   string `gorm:"column:tenant_id;uniqueIndex:ux_promotions_tenant_code"`
	Code       string `gorm:"column:code;uniqueIndex:ux_promotions_tenant_code"`
	PercentOff int    `gorm:"column:percent_off"`
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (promotionModel) TableName() string { return "promotions" }

// Models lists the tables this adapter migrates.
func Models() []any {
	return []any{&orderModel{}, &promotionModel{}}
}

func orderFromModel(m orderModel) entities.Order {
	return entities.Order{
		OrderID:     m.OrderID,
		TenantID:    m.TenantID,
		CreatedBy:   m.CreatedBy,
		Description: m.Description,
		AmountCents: m.AmountCents,
		Currency:    m.Currency,
		PromoCode:   m.PromoCode,
		Status:      m.Status,
		ReceiptID:   m.ReceiptID,
		PaidAt:      m.PaidAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func orderToModel(order entities.Order) orderModel {
	return orderModel{
		OrderID:     order.OrderID,
		TenantID:    order.TenantID,
		CreatedBy:   order.CreatedBy,
		Description: order.Description,
		AmountCents: order.AmountCents,
		Currency:    order.Currency,
		PromoCode:   order.PromoCode,
		Status:      order.Status,
		ReceiptID:   order.ReceiptID,
		PaidAt:      order.PaidAt,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

func promotionFromModel(m promotionModel) entities.Promotion {
	return entities.Promotion{
		PromoID:    m.PromoID,
		TenantID:   m.TenantID,
		Code:       m.Code,
		PercentOff: m.PercentOff,
		Active:     m.Active,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func promotionToModel(promotion entities.Promotion) promotionModel {
	return promotionModel{
		PromoID:    promotion.PromoID,
		TenantID:   promotion.TenantID,
		Code:       promotion.Code,
		PercentOff: promotion.PercentOff,
		Active:     promotion.Active,
		CreatedAt:  promotion.CreatedAt,
		UpdatedAt:  promotion.UpdatedAt,
	}
}
