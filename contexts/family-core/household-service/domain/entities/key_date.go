package entities

import "time"

// KeyDate is a birthday, anniversary or other date the family tracks.
type KeyDate struct {
	KeyDateID string
	TenantID  string
	Title     string
	Date      time.Time
	Annual    bool
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
