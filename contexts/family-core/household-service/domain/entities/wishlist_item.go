package entities

import "time"

// WishlistItem is a gift idea pinned to a family member.
type WishlistItem struct {
	ItemID     string
	TenantID   string
	OwnerID    string
	Title      string
	URL        string
	PriceCents int64
	Claimed    bool
	ClaimedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
