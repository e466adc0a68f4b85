package entities

import "time"

const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
)

// Order is a tenant-scoped purchase. It stays pending until a checkout
// charges it through the payment gateway.
type Order struct {
	OrderID     string
	TenantID    string
	CreatedBy   string
	Description string
	AmountCents int64
	Currency    string
	PromoCode   string
	Status      string
	ReceiptID   string
	PaidAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (o Order) Paid() bool { return o.Status == OrderStatusPaid }
