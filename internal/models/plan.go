package models

// Slot is a contiguous free interval available for allocation.
type Slot struct {
	Day    Weekday   `json:"day"`
	Window TimeRange `json:"window"`
}

type EntryKind string

const (
	EntryTask    EntryKind = "task"
	EntryEvent   EntryKind = "event"
	EntryRoutine EntryKind = "routine"
)

// ScheduleEntry is one row of a day's schedule: an allocated task chunk,
// a fixed event, or a recurring routine.
type ScheduleEntry struct {
	Kind     EntryKind `json:"kind"`
	TaskID   string    `json:"task_id,omitempty"`
	Label    string    `json:"label"`
	Window   TimeRange `json:"window"`
	Minutes  int       `json:"minutes"`
}

// ChecklistItem mirrors one placed task with its aggregated minutes. Task
// identity must round-trip exactly through the evening check-in.
type ChecklistItem struct {
	TaskID  string `json:"task_id"`
	Label   string `json:"label"`
	Minutes int    `json:"minutes"`
}

// Plan is the generated day plan. Regenerated idempotently each morning;
// the previous plan is snapshotted, not versioned.
type Plan struct {
	Date          string          `json:"date"`
	TopPriorities []string        `json:"top_priorities"`
	Schedule      []ScheduleEntry `json:"schedule"`
	Checklist     []ChecklistItem `json:"checklist"`
	Carryover     []string        `json:"carryover,omitempty"`
	TotalMinutes  int             `json:"total_work_minutes"`
}

// Allocations returns only the task chunks of the schedule.
func (p Plan) Allocations() []ScheduleEntry {
	var out []ScheduleEntry
	for _, e := range p.Schedule {
		if e.Kind == EntryTask {
			out = append(out, e)
		}
	}
	return out
}
