package entities

import "time"

// Recognized nag tones.
const (
	ToneGentle  = "gentle"
	TonePlayful = "playful"
	ToneFirm    = "firm"
)

// NagSettings tunes how reminder text is composed for one tenant.
type NagSettings struct {
	TenantID  string
	Tone      string
	DailyCap  int
	UpdatedAt time.Time
}

// DefaultNagSettings is the behavior for tenants that never configured
// anything.
func DefaultNagSettings(tenantID string) NagSettings {
	return NagSettings{TenantID: tenantID, Tone: ToneGentle, DailyCap: 5}
}

// ValidTone reports whether the tone is one of the recognized values.
func ValidTone(tone string) bool {
	switch tone {
	case ToneGentle, TonePlayful, ToneFirm:
		return true
	}
	return false
}
