package scheduler

import (
	"time"

	"github.com/julianstephens/dayweave/internal/models"
)

// SuggestionSource supplies optional analytics-derived hints. Scheduling
// must work identically with a nil source: every boost defaults to zero
// and no day affinity applies.
type SuggestionSource interface {
	// BoostFor returns an additive urgency boost for a task, 0 if none.
	BoostFor(taskID string) float64
	// PreferredDayFor returns the weekday the task historically goes best
	// on, with ok=false when there is no signal.
	PreferredDayFor(taskID string) (models.Weekday, bool)
}

// Score computes the composite urgency score for a task. Higher is more
// urgent. Paused and complete tasks must be filtered out before scoring.
func Score(t models.Task, today time.Time, boost float64) float64 {
	score := float64(t.Priority) + boost

	switch t.Type {
	case models.TaskDeadlineProject:
		if t.RemainingHours != nil {
			// Days until deadline is floored at 1, so a past deadline
			// still scores with the maximal urgency ratio.
			score += *t.RemainingHours / float64(t.DaysUntilDeadline(today))
		}
	case models.TaskWeeklyBudget:
		score += t.WeeklyGapHours()
	}

	return score
}

// tier maps a task type to its placement tier. Tiers are strict: every
// deadline project outranks every weekly budget, and so on, regardless of
// raw score.
func tier(t models.TaskType) int {
	switch t {
	case models.TaskDeadlineProject:
		return 0
	case models.TaskWeeklyBudget:
		return 1
	case models.TaskDailyRitual:
		return 2
	default:
		return 3
	}
}
