package schedule

import (
	"testing"
	"time"
)

func mustLoadLoc(t *testing.T) *time.Location {
	loc, err := time.LoadLocation("Africa/Johannesburg")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func TestParseDayFormats(t *testing.T) {
	loc := mustLoadLoc(t)

	day, err := ParseDay("2026-10-18", loc)
	if err != nil {
		t.Fatalf("ParseDay error: %v", err)
	}
	if day.Hour() != 0 || day.Day() != 18 || day.Location() != loc {
		t.Fatalf("unexpected day: %v", day)
	}

	// 23:30 UTC on the 17th is already the 18th in Johannesburg (UTC+2).
	day, err = ParseDay("2026-10-17T23:30:00Z", loc)
	if err != nil {
		t.Fatalf("ParseDay error: %v", err)
	}
	if day.Day() != 18 {
		t.Fatalf("expected the 18th, got %v", day)
	}

	if _, err := ParseDay("18/10/2026", loc); err != ErrInvalidDate {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if _, err := ParseDay("", loc); err != ErrInvalidDate {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestIsDatePast(t *testing.T) {
	loc := mustLoadLoc(t)
	now := time.Date(2026, 2, 4, 10, 0, 0, 0, loc)

	past, err := IsDatePast("2026-02-03", loc, now)
	if err != nil {
		t.Fatalf("IsDatePast error: %v", err)
	}
	if !past {
		t.Fatalf("expected yesterday to be past")
	}

	past, err = IsDatePast("2026-02-04", loc, now)
	if err != nil {
		t.Fatalf("IsDatePast error: %v", err)
	}
	if past {
		t.Fatalf("expected today to be not past")
	}

	past, err = IsDatePast("2026-02-05", loc, now)
	if err != nil {
		t.Fatalf("IsDatePast error: %v", err)
	}
	if past {
		t.Fatalf("expected tomorrow to be not past")
	}
}

func TestIsDatePastLateEvening(t *testing.T) {
	loc := mustLoadLoc(t)
	now := time.Date(2026, 2, 4, 23, 59, 59, 0, loc)

	past, err := IsDatePast("2026-02-04", loc, now)
	if err != nil {
		t.Fatalf("IsDatePast error: %v", err)
	}
	if past {
		t.Fatalf("expected today to still be bookable just before midnight")
	}
}
