package models

import "testing"

func TestParseTimeRange(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"09:00-11:30", "09:00-11:30", false},
		{"09:00 - 11:30", "09:00-11:30", false},
		{"09:00–11:30", "09:00-11:30", false}, // en dash
		{"09:00", "", true},
		{"11:00-09:00", "", true},
		{"9am-11am", "", true},
	}

	for _, tt := range tests {
		tr, err := ParseTimeRange(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTimeRange(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeRange(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if tr.String() != tt.want {
			t.Errorf("ParseTimeRange(%q): expected %s, got %s", tt.in, tt.want, tr)
		}
	}
}

func TestTimeRangeOverlaps(t *testing.T) {
	a := TimeRange{Start: "09:00", End: "11:00"}

	if !a.Overlaps(TimeRange{Start: "10:00", End: "12:00"}) {
		t.Error("expected overlap")
	}
	if a.Overlaps(TimeRange{Start: "11:00", End: "12:00"}) {
		t.Error("touching windows must not overlap")
	}
	if a.Overlaps(TimeRange{Start: "07:00", End: "09:00"}) {
		t.Error("touching windows must not overlap")
	}
}

func TestFormatMinutes_Clamped(t *testing.T) {
	if got := FormatMinutes(-15); got != "00:00" {
		t.Errorf("expected 00:00, got %s", got)
	}
	if got := FormatMinutes(24*60 + 30); got != "23:59" {
		t.Errorf("expected 23:59, got %s", got)
	}
	if got := FormatMinutes(545); got != "09:05" {
		t.Errorf("expected 09:05, got %s", got)
	}
}

func TestBlockedWindow_CommuteWidening(t *testing.T) {
	e := FixedEvent{
		Label:      "clinic",
		Day:        Monday,
		Window:     TimeRange{Start: "15:00", End: "16:00"},
		CommuteMin: 20,
	}
	if got := e.BlockedWindow().String(); got != "14:40-16:20" {
		t.Errorf("expected 14:40-16:20, got %s", got)
	}

	early := FixedEvent{
		Window:     TimeRange{Start: "00:10", End: "01:00"},
		CommuteMin: 30,
	}
	if got := early.BlockedWindow().String(); got != "00:00-01:30" {
		t.Errorf("expected clamp at midnight, got %s", got)
	}
}
