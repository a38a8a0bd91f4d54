package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/dayweave/internal/constants"
)

// TimeRange is a start-end window within a single day, in HH:MM.
type TimeRange struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// ParseTimeRange parses "09:00-11:00" (en/em dashes accepted).
func ParseTimeRange(s string) (TimeRange, error) {
	cleaned := strings.NewReplacer("–", "-", "—", "-").Replace(s)
	parts := strings.Split(cleaned, "-")
	if len(parts) != 2 {
		return TimeRange{}, fmt.Errorf("invalid time range: %q", s)
	}
	tr := TimeRange{
		Start: strings.TrimSpace(parts[0]),
		End:   strings.TrimSpace(parts[1]),
	}
	if err := tr.Validate(); err != nil {
		return TimeRange{}, err
	}
	return tr, nil
}

// UnmarshalYAML lets a range appear as a plain "HH:MM-HH:MM" string in
// profile files.
func (tr *TimeRange) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err == nil {
		parsed, perr := ParseTimeRange(s)
		if perr != nil {
			return perr
		}
		*tr = parsed
		return nil
	}
	type plain TimeRange
	var p plain
	if err := unmarshal(&p); err != nil {
		return err
	}
	*tr = TimeRange(p)
	return nil
}

func parseMinutes(hhmm string) (int, error) {
	t, err := time.Parse(constants.TimeFormat, hhmm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatMinutes renders minutes-from-midnight as HH:MM, clamped to the day.
func FormatMinutes(m int) string {
	if m < 0 {
		m = 0
	}
	if m > 23*60+59 {
		m = 23*60 + 59
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Validate checks both endpoints parse and the window has positive length.
func (tr TimeRange) Validate() error {
	start, err := parseMinutes(tr.Start)
	if err != nil {
		return fmt.Errorf("invalid start time %q: %w", tr.Start, err)
	}
	end, err := parseMinutes(tr.End)
	if err != nil {
		return fmt.Errorf("invalid end time %q: %w", tr.End, err)
	}
	if end <= start {
		return fmt.Errorf("time range %s-%s: end must be after start", tr.Start, tr.End)
	}
	return nil
}

// StartMinutes returns minutes from midnight; 0 if unparseable.
func (tr TimeRange) StartMinutes() int {
	m, err := parseMinutes(tr.Start)
	if err != nil {
		return 0
	}
	return m
}

// EndMinutes returns minutes from midnight; 0 if unparseable.
func (tr TimeRange) EndMinutes() int {
	m, err := parseMinutes(tr.End)
	if err != nil {
		return 0
	}
	return m
}

// DurationMinutes returns the window length, never negative.
func (tr TimeRange) DurationMinutes() int {
	d := tr.EndMinutes() - tr.StartMinutes()
	if d < 0 {
		return 0
	}
	return d
}

// Overlaps reports whether two windows share any time.
func (tr TimeRange) Overlaps(other TimeRange) bool {
	return tr.StartMinutes() < other.EndMinutes() && other.StartMinutes() < tr.EndMinutes()
}

// String renders the range as "HH:MM-HH:MM".
func (tr TimeRange) String() string {
	return tr.Start + "-" + tr.End
}
