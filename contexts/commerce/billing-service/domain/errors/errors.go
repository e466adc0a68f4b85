package errors

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrPromotionNotFound = errors.New("promotion not found")
	ErrInvalidOrder      = errors.New("invalid order")
	ErrInvalidPromotion  = errors.New("invalid promotion")
	ErrPromoCodeConflict = errors.New("promo code already exists")
	ErrOrderAlreadyPaid  = errors.New("order is already paid")
	ErrPaymentDeclined   = errors.New("payment declined")
)
