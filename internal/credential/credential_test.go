package credential

import (
	"testing"
	"time"
)

func TestParseDate_Valid(t *testing.T) {
	tests := []string{"2026-01-01", "2024-02-29", "1999-12-31", "2026-08-15"}
	for _, s := range tests {
		got, err := ParseDate(s)
		if err != nil {
			t.Errorf("ParseDate(%q) returned error: %v", s, err)
			continue
		}
		if got.Format(DateLayout) != s {
			t.Errorf("ParseDate(%q) round-trips to %q", s, got.Format(DateLayout))
		}
	}
}

func TestParseDate_Invalid(t *testing.T) {
	tests := []string{
		"",
		"2026-13-01", // month out of range
		"2026-00-10",
		"2026-02-30", // day invalid for month
		"2025-02-29", // not a leap year
		"2026-1-2",   // no zero padding
		"01/02/2026",
		"2026-08-15T00:00:00Z",
		"tomorrow",
	}
	for _, s := range tests {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q) succeeded, want error", s)
		}
	}
}

func TestDateOf_StripsTimeComponent(t *testing.T) {
	instant := time.Date(2026, 8, 15, 23, 59, 59, 0, time.UTC)
	got := DateOf(instant)
	want := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateOf = %v, want %v", got, want)
	}
}
