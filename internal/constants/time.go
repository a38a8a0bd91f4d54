package constants

const (
	// DateFormat is the standard date format (YYYY-MM-DD) used across the app.
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time-of-day format (HH:MM).
	TimeFormat = "15:04"
)
