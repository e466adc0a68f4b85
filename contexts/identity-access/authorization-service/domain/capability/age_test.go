package capability

import (
	"testing"
	"time"
)

func TestIsAdultBirthdayBoundary(t *testing.T) {
	now := time.Date(2026, time.June, 15, 10, 0, 0, 0, time.UTC)

	onBirthday := time.Date(2008, time.June, 15, 0, 0, 0, 0, time.UTC)
	if !IsAdult(&onBirthday, now, false) {
		t.Fatalf("the 18th birthday itself must count as adult")
	}

	dayShort := time.Date(2008, time.June, 16, 0, 0, 0, 0, time.UTC)
	if IsAdult(&dayShort, now, false) {
		t.Fatalf("one day short of 18 must not count as adult")
	}
}

func TestIsAdultUnknownBirthDateFollowsPolicy(t *testing.T) {
	now := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

	if !IsAdult(nil, now, true) {
		t.Fatalf("assume-adult policy must treat unknown as adult")
	}
	if IsAdult(nil, now, false) {
		t.Fatalf("strict policy must treat unknown as minor")
	}
}

func TestIsAdultLeapDayBirth(t *testing.T) {
	birth := time.Date(2008, time.February, 29, 0, 0, 0, 0, time.UTC)

	before := time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC)
	if IsAdult(&birth, before, false) {
		t.Fatalf("february 28 precedes a leap-day birthday")
	}
	after := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	if !IsAdult(&birth, after, false) {
		t.Fatalf("march 1 passes a leap-day birthday")
	}
}
