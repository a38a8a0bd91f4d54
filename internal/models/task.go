package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/dayweave/internal/constants"
)

type TaskType string

const (
	TaskDeadlineProject TaskType = "deadline_project"
	TaskWeeklyBudget    TaskType = "weekly_budget"
	TaskDailyRitual     TaskType = "daily_ritual"
	TaskOpenEnded       TaskType = "open_ended"
)

type TaskStatus string

const (
	StatusActive   TaskStatus = "active"
	StatusPaused   TaskStatus = "paused"
	StatusComplete TaskStatus = "complete"
)

// Task is a unit of planned work. Type-specific fields are only populated
// for the matching type; Validate enforces that shape at construction time.
type Task struct {
	ID       string     `json:"id" yaml:"id"`
	Title    string     `json:"title" yaml:"title"`
	Type     TaskType   `json:"type" yaml:"type"`
	Priority int        `json:"priority" yaml:"priority"`
	Status   TaskStatus `json:"status" yaml:"status"`

	// deadline_project
	RemainingHours *float64 `json:"remaining_hours,omitempty" yaml:"remaining_hours,omitempty"`
	Deadline       string   `json:"deadline,omitempty" yaml:"deadline,omitempty"` // YYYY-MM-DD

	// weekly_budget
	TargetHoursPerWeek *float64 `json:"target_hours_per_week,omitempty" yaml:"target_hours_per_week,omitempty"`
	HoursThisWeek      float64  `json:"hours_this_week,omitempty" yaml:"hours_this_week,omitempty"`

	// daily_ritual
	EstimatedMinutesPerDay int `json:"estimated_minutes_per_day,omitempty" yaml:"estimated_minutes_per_day,omitempty"`

	// scheduling hints
	MinChunkMinutes int `json:"min_chunk_minutes,omitempty" yaml:"min_chunk_minutes,omitempty"`
	MaxChunkMinutes int `json:"max_chunk_minutes,omitempty" yaml:"max_chunk_minutes,omitempty"`

	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// ApplyDefaults fills unset optional fields.
func (t *Task) ApplyDefaults() {
	if t.Status == "" {
		t.Status = StatusActive
	}
	if t.Priority == 0 {
		t.Priority = 5
	}
	if t.MinChunkMinutes == 0 {
		t.MinChunkMinutes = constants.DefaultMinChunkMinutes
	}
	if t.MaxChunkMinutes == 0 {
		t.MaxChunkMinutes = constants.DefaultMaxChunkMinutes
	}
	if t.Type == TaskDailyRitual && t.EstimatedMinutesPerDay == 0 {
		t.EstimatedMinutesPerDay = constants.DefaultRitualMinutes
	}
}

// Validate checks the task schema, including the type/field invariant:
// deadline fields and weekly-budget fields are mutually exclusive and must
// match the declared type.
func (t Task) Validate() []string {
	var problems []string
	if t.ID == "" {
		problems = append(problems, "missing required field: id")
	}
	if t.Title == "" {
		problems = append(problems, "missing required field: title")
	}

	switch t.Type {
	case TaskDeadlineProject, TaskWeeklyBudget, TaskDailyRitual, TaskOpenEnded:
	case "":
		problems = append(problems, "missing required field: type")
	default:
		problems = append(problems, fmt.Sprintf("invalid task type: %s", t.Type))
	}

	switch t.Status {
	case StatusActive, StatusPaused, StatusComplete, "":
	default:
		problems = append(problems, fmt.Sprintf("invalid status: %s", t.Status))
	}

	if t.Priority < 1 || t.Priority > 10 {
		problems = append(problems, "priority must be between 1 and 10")
	}

	if t.MinChunkMinutes > t.MaxChunkMinutes {
		problems = append(problems, "min_chunk_minutes must not exceed max_chunk_minutes")
	}

	switch t.Type {
	case TaskDeadlineProject:
		if t.RemainingHours == nil {
			problems = append(problems, "deadline_project requires remaining_hours")
		} else if *t.RemainingHours < 0 {
			problems = append(problems, "remaining_hours must not be negative")
		}
		if t.Deadline == "" {
			problems = append(problems, "deadline_project requires a deadline date")
		} else if _, err := time.Parse(constants.DateFormat, t.Deadline); err != nil {
			problems = append(problems, fmt.Sprintf("invalid deadline date: %s", t.Deadline))
		}
		if t.TargetHoursPerWeek != nil {
			problems = append(problems, "deadline_project must not set target_hours_per_week")
		}
	case TaskWeeklyBudget:
		if t.TargetHoursPerWeek == nil {
			problems = append(problems, "weekly_budget requires target_hours_per_week")
		} else if *t.TargetHoursPerWeek <= 0 {
			problems = append(problems, "target_hours_per_week must be positive")
		}
		if t.RemainingHours != nil || t.Deadline != "" {
			problems = append(problems, "weekly_budget must not set deadline fields")
		}
	case TaskDailyRitual, TaskOpenEnded:
		if t.RemainingHours != nil || t.Deadline != "" || t.TargetHoursPerWeek != nil {
			problems = append(problems, fmt.Sprintf("%s must not set deadline or budget fields", t.Type))
		}
	}

	return problems
}

// Schedulable reports whether the task is a candidate for planning.
func (t Task) Schedulable() bool {
	return t.Status == StatusActive
}

// DaysUntilDeadline returns whole days until the deadline, floored at 1 so
// that a past deadline scores with maximal urgency rather than dividing by
// zero or a negative.
func (t Task) DaysUntilDeadline(today time.Time) int {
	d, err := time.Parse(constants.DateFormat, t.Deadline)
	if err != nil {
		return 1
	}
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	days := int(d.Sub(today).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

// WeeklyGapHours is the unmet weekly budget, clamped at zero.
func (t Task) WeeklyGapHours() float64 {
	if t.TargetHoursPerWeek == nil {
		return 0
	}
	gap := *t.TargetHoursPerWeek - t.HoursThisWeek
	if gap < 0 {
		return 0
	}
	return gap
}

// ApplyProgress records completed work by task type: deadline projects
// burn down remaining hours (clamped at zero, flipping to complete when
// exhausted), weekly budgets accumulate hours, and rituals just count as
// done for the day. Reports whether the task transitioned to complete.
func (t *Task) ApplyProgress(minutes int) bool {
	switch t.Type {
	case TaskDeadlineProject:
		if t.RemainingHours == nil {
			return false
		}
		remaining := *t.RemainingHours - float64(minutes)/60.0
		if remaining <= 0 {
			remaining = 0
			t.RemainingHours = &remaining
			t.Status = StatusComplete
			return true
		}
		t.RemainingHours = &remaining
	case TaskWeeklyBudget:
		t.HoursThisWeek += float64(minutes) / 60.0
	}
	return false
}

// TasksFile is the persisted task collection.
type TasksFile struct {
	WeekStart Weekday `json:"week_start" yaml:"week_start"`
	Tasks     []Task  `json:"tasks" yaml:"tasks"`
	Archived  []Task  `json:"archived,omitempty" yaml:"archived,omitempty"`
}

// FindTask returns the active-list task with the given ID, or nil.
func (tf *TasksFile) FindTask(id string) *Task {
	for i := range tf.Tasks {
		if tf.Tasks[i].ID == id {
			return &tf.Tasks[i]
		}
	}
	return nil
}
