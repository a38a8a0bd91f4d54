package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/dayweave/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// TodayInTimezone returns today's date string (YYYY-MM-DD) in the specified
// timezone, so "today" follows the user's configured timezone rather than
// the system one.
func TodayInTimezone(timezone string) (string, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return "", err
	}
	return now.Format(constants.DateFormat), nil
}

// ParseDate parses a date string in the standard format.
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateFormat, dateStr)
}

// FormatDuration renders minutes as a compact human string: "45m", "2h",
// "1h30m".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	h := minutes / 60
	m := minutes % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%02dm", h, m)
}
