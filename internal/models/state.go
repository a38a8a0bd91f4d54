package models

import "sort"

type Rating string

const (
	RatingGood Rating = "good"
	RatingFair Rating = "fair"
	RatingBad  Rating = "bad"
)

// DayRecord is one finalized day in the planner history.
type DayRecord struct {
	Day           string      `json:"day"`
	Rating        Rating      `json:"rating"`
	Mode          CheckinMode `json:"mode"`
	StreakCounted bool        `json:"streakCounted"`
	DoneCount     int         `json:"doneCount"`
	Total         int         `json:"total"`
}

// PlannerState is the single persistent planning state object. It is
// loaded at the start of an operation and saved at the end, under the
// workspace lock; only the finalizer mutates it, at most once per day.
type PlannerState struct {
	Streak            int         `json:"streak"`
	LastStreakDate    string      `json:"lastStreakDate,omitempty"`
	LastRating        Rating      `json:"lastRating,omitempty"`
	LastMode          CheckinMode `json:"lastMode,omitempty"`
	LastSummary       string      `json:"lastSummary,omitempty"`
	LastFinalizedDate string      `json:"lastFinalizedDate,omitempty"`
	History           []DayRecord `json:"history"`
	WeekStartDate     string      `json:"weekStartDate,omitempty"`
}

// RecordDay inserts or replaces the history record for rec.Day, keeping
// history ordered newest first, de-duplicated by day, and bounded to limit
// entries.
func (s *PlannerState) RecordDay(rec DayRecord, limit int) {
	byDay := make(map[string]DayRecord, len(s.History)+1)
	for _, r := range s.History {
		byDay[r.Day] = r
	}
	byDay[rec.Day] = rec

	records := make([]DayRecord, 0, len(byDay))
	for _, r := range byDay {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Day > records[j].Day })
	if len(records) > limit {
		records = records[:limit]
	}
	s.History = records
}
