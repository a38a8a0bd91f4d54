package models

import (
	"fmt"
	"strings"
	"time"
)

// Weekday is a lowercase three-letter day name ("mon" .. "sun").
type Weekday string

const (
	Monday    Weekday = "mon"
	Tuesday   Weekday = "tue"
	Wednesday Weekday = "wed"
	Thursday  Weekday = "thu"
	Friday    Weekday = "fri"
	Saturday  Weekday = "sat"
	Sunday    Weekday = "sun"
)

var weekdayNames = map[string]Weekday{
	"mon": Monday, "monday": Monday,
	"tue": Tuesday, "tuesday": Tuesday,
	"wed": Wednesday, "wednesday": Wednesday,
	"thu": Thursday, "thursday": Thursday,
	"fri": Friday, "friday": Friday,
	"sat": Saturday, "saturday": Saturday,
	"sun": Sunday, "sunday": Sunday,
}

// ParseWeekday parses a day name, accepting both short and long forms.
func ParseWeekday(s string) (Weekday, error) {
	if wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return wd, nil
	}
	return "", fmt.Errorf("invalid weekday: %q", s)
}

// WeekdayOf converts a time.Weekday to our day name.
func WeekdayOf(d time.Weekday) Weekday {
	switch d {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// WeekdayOfDate returns the day name for a calendar date.
func WeekdayOfDate(t time.Time) Weekday {
	return WeekdayOf(t.Weekday())
}
