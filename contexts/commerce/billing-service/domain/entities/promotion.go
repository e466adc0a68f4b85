package entities

import "time"

// Promotion is a tenant-scoped promo code granting a percentage
// discount at checkout.
type Promotion struct {
	PromoID    string
	TenantID   string
	Code       string
	PercentOff int
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Discount applies the promotion to an amount. Inactive promotions
// discount nothing.
func (p Promotion) Discount(amountCents int64) int64 {
	if !p.Active || p.PercentOff <= 0 {
		return 0
	}
	return amountCents * int64(p.PercentOff) / 100
}
