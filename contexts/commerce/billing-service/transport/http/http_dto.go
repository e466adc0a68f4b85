package httptransport

import "time"

// OrderDTO is the wire shape of an order.
type OrderDTO struct {
	OrderID     string     `json:"orderId"`
	Description string     `json:"description"`
	AmountCents int64      `json:"amountCents"`
	Currency    string     `json:"currency"`
	PromoCode   string     `json:"promoCode,omitempty"`
	Status      string     `json:"status"`
	ReceiptID   string     `json:"receiptId,omitempty"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type CreateOrderRequest struct {
	Description string `json:"description"`
	AmountCents int64  `json:"amountCents"`
	Currency    string `json:"currency"`
	PromoCode   string `json:"promoCode"`
}

type ListOrdersResponse struct {
	Orders []OrderDTO `json:"orders"`
}

// PromotionDTO is the wire shape of a promo code.
type PromotionDTO struct {
	PromoID    string    `json:"promoId"`
	Code       string    `json:"code"`
	PercentOff int       `json:"percentOff"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type CreatePromotionRequest struct {
	Code       string `json:"code"`
	PercentOff int    `json:"percentOff"`
	Active     bool   `json:"active"`
}

type UpdatePromotionRequest struct {
	PercentOff *int  `json:"percentOff"`
	Active     *bool `json:"active"`
}

type ListPromotionsResponse struct {
	Promotions []PromotionDTO `json:"promotions"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
