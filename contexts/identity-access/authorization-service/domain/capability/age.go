package capability

import "time"

// AdultAge is the age in whole years at which billing capabilities open
// up for restricted members.
const AdultAge = 18

// IsAdult reports whether the birth date puts the holder at or past
// AdultAge as of now. Whole-year arithmetic: a birthday that has not yet
// arrived this year does not count. A nil birth date resolves to the
// assumeAdultWhenUnknown policy.
func IsAdult(birthDate *time.Time, now time.Time, assumeAdultWhenUnknown bool) bool {
	if birthDate == nil {
		return assumeAdultWhenUnknown
	}
	birth := birthDate.UTC()
	now = now.UTC()

	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years >= AdultAge
}
