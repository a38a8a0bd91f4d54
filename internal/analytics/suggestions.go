package analytics

import (
	"encoding/json"
	"os"

	"github.com/julianstephens/dayweave/internal/models"
)

// Snapshot is the cached analytics summary at planner/analytics.json.
// An external process computes and writes it; this package only reads.
type Snapshot struct {
	CompletionByWeekday map[string]float64 `json:"completionByWeekday,omitempty"`
	BestTimeBlocks      []string           `json:"bestTimeBlocks,omitempty"`
	MostSkippedTasks    []string           `json:"mostSkippedTasks,omitempty"`
	Rolling7DayAvg      float64            `json:"rolling7dayAvg,omitempty"`
	Rolling30DayAvg     float64            `json:"rolling30dayAvg,omitempty"`
	RecoverySuccessRate float64            `json:"recoverySuccessRate,omitempty"`
	TotalDaysTracked    int                `json:"totalDaysTracked,omitempty"`

	// Per-task scheduling hints.
	TaskBoosts    map[string]float64 `json:"taskBoosts,omitempty"`
	PreferredDays map[string]string  `json:"preferredDays,omitempty"`
}

// Suggestions adapts a snapshot to the scheduler's suggestion interface.
// A nil receiver or empty snapshot yields zero boosts everywhere, so the
// planner behaves identically with no analytics file at all.
type Suggestions struct {
	snap Snapshot
}

// LoadSuggestions reads the analytics snapshot. A missing file is not an
// error; it produces an empty source.
func LoadSuggestions(path string) (*Suggestions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Suggestions{}, nil
		}
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &Suggestions{snap: snap}, nil
}

// FromSnapshot wraps an in-memory snapshot, used by tests and the agent
// context generator.
func FromSnapshot(snap Snapshot) *Suggestions {
	return &Suggestions{snap: snap}
}

// Snapshot returns the underlying data.
func (s *Suggestions) Snapshot() Snapshot {
	if s == nil {
		return Snapshot{}
	}
	return s.snap
}

// BoostFor returns the analytics boost for a task, zero when unknown.
func (s *Suggestions) BoostFor(taskID string) float64 {
	if s == nil {
		return 0
	}
	return s.snap.TaskBoosts[taskID]
}

// PreferredDayFor returns the analytics-preferred weekday for a task.
func (s *Suggestions) PreferredDayFor(taskID string) (models.Weekday, bool) {
	if s == nil {
		return "", false
	}
	raw, ok := s.snap.PreferredDays[taskID]
	if !ok {
		return "", false
	}
	day, err := models.ParseWeekday(raw)
	if err != nil {
		return "", false
	}
	return day, true
}
