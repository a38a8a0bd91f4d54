package models

type CheckinMode string

const (
	ModeCommit   CheckinMode = "commit"
	ModeRecovery CheckinMode = "recovery"
)

// CheckinItem is one line of the evening check-in. TaskID is empty for
// free-text items that did not match a planned task.
type CheckinItem struct {
	TaskID       string `json:"task_id,omitempty"`
	Label        string `json:"label"`
	Done         bool   `json:"done"`
	MinutesSpent int    `json:"minutes_spent,omitempty"`
	Comment      string `json:"comment,omitempty"`
}

// CheckinDraft is the day's in-progress check-in, cleared after finalize.
type CheckinDraft struct {
	Day        string        `json:"day"`
	UpdatedAt  string        `json:"updatedAt,omitempty"`
	Mode       CheckinMode   `json:"mode"`
	Items      []CheckinItem `json:"items"`
	Reflection string        `json:"reflection"`
}

// DoneCount returns the number of completed items.
func (d CheckinDraft) DoneCount() int {
	n := 0
	for _, it := range d.Items {
		if it.Done {
			n++
		}
	}
	return n
}

// AnyTimedDone reports whether any completed item carries a recorded
// duration.
func (d CheckinDraft) AnyTimedDone() bool {
	for _, it := range d.Items {
		if it.Done && it.MinutesSpent > 0 {
			return true
		}
	}
	return false
}

// Validate checks the draft before finalization touches any state.
func (d CheckinDraft) Validate() []string {
	var problems []string
	if d.Day == "" {
		problems = append(problems, "draft has no day")
	}
	switch d.Mode {
	case ModeCommit, ModeRecovery, "":
	default:
		problems = append(problems, "invalid check-in mode: "+string(d.Mode))
	}
	for _, it := range d.Items {
		if it.Label == "" {
			problems = append(problems, "check-in item has no label")
		}
		if it.MinutesSpent < 0 {
			problems = append(problems, "check-in item has negative minutes")
		}
	}
	return problems
}
