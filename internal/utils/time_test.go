package utils

import "testing"

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{45, "45m"},
		{60, "1h"},
		{90, "1h30m"},
		{125, "2h05m"},
		{0, "0m"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.minutes); got != tt.want {
			t.Errorf("FormatDuration(%d): expected %q, got %q", tt.minutes, tt.want, got)
		}
	}
}

func TestLoadLocation(t *testing.T) {
	if _, err := LoadLocation("Europe/Berlin"); err != nil {
		t.Errorf("unexpected error for valid zone: %v", err)
	}
	if loc, err := LoadLocation(""); err != nil || loc == nil {
		t.Errorf("empty zone should fall back to local, got %v %v", loc, err)
	}
	if _, err := LoadLocation("Mars/Olympus"); err == nil {
		t.Error("expected error for unknown zone")
	}
}

func TestTodayInTimezone_InvalidZone(t *testing.T) {
	if _, err := TodayInTimezone("Not/AZone"); err == nil {
		t.Error("expected error for invalid timezone")
	}
}
