package analytics

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/dayweave/internal/models"
	"github.com/julianstephens/dayweave/internal/scheduler"
)

// UrgentTask is a task with its current urgency score, for agent use.
type UrgentTask struct {
	TaskID   string          `json:"task_id"`
	Title    string          `json:"title"`
	Type     models.TaskType `json:"type"`
	Priority int             `json:"priority"`
	Score    float64         `json:"score"`
}

// BudgetStatus reports one weekly-budget task's progress.
type BudgetStatus struct {
	TaskID         string  `json:"task_id"`
	Title          string  `json:"title"`
	TargetHours    float64 `json:"target_hours"`
	ActualHours    float64 `json:"actual_hours"`
	RemainingHours float64 `json:"remaining_hours"`
	ProgressPct    float64 `json:"progress_pct"`
}

// Suggestion is one rule-based scheduling hint.
type Suggestion struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

// AgentContext is the aggregated snapshot written after each finalize for
// external agents to consume.
type AgentContext struct {
	GeneratedAt        string         `json:"generatedAt"`
	Streak             int            `json:"streak"`
	LastRating         models.Rating  `json:"lastRating,omitempty"`
	Analytics          Snapshot       `json:"analytics"`
	TopUrgentTasks     []UrgentTask   `json:"topUrgentTasks"`
	WeeklyBudgetStatus []BudgetStatus `json:"weeklyBudgetStatus"`
	Suggestions        []Suggestion   `json:"suggestions"`
}

// BuildAgentContext aggregates state, tasks, and the analytics snapshot.
func BuildAgentContext(state models.PlannerState, tasks []models.Task, snap Snapshot, now time.Time) AgentContext {
	ctx := AgentContext{
		GeneratedAt: now.Format(time.RFC3339),
		Streak:      state.Streak,
		LastRating:  state.LastRating,
		Analytics:   snap,
	}

	src := FromSnapshot(snap)
	var urgent []UrgentTask
	for _, t := range tasks {
		if !t.Schedulable() {
			continue
		}
		urgent = append(urgent, UrgentTask{
			TaskID:   t.ID,
			Title:    t.Title,
			Type:     t.Type,
			Priority: t.Priority,
			Score:    scheduler.Score(t, now, src.BoostFor(t.ID)),
		})
	}
	sort.Slice(urgent, func(i, j int) bool {
		if urgent[i].Score != urgent[j].Score {
			return urgent[i].Score > urgent[j].Score
		}
		return urgent[i].TaskID < urgent[j].TaskID
	})
	if len(urgent) > 5 {
		urgent = urgent[:5]
	}
	ctx.TopUrgentTasks = urgent

	for _, t := range tasks {
		if t.Type != models.TaskWeeklyBudget || t.TargetHoursPerWeek == nil {
			continue
		}
		target := *t.TargetHoursPerWeek
		ctx.WeeklyBudgetStatus = append(ctx.WeeklyBudgetStatus, BudgetStatus{
			TaskID:         t.ID,
			Title:          t.Title,
			TargetHours:    target,
			ActualHours:    round1(t.HoursThisWeek),
			RemainingHours: round1(t.WeeklyGapHours()),
			ProgressPct:    round1(t.HoursThisWeek / target * 100),
		})
	}

	ctx.Suggestions = buildSuggestions(snap, state, urgent, now)
	return ctx
}

// WriteAgentContext builds and atomically writes agent_context.json.
func WriteAgentContext(path string, state models.PlannerState, tasks []models.Task, snap Snapshot, now time.Time) error {
	ctx := BuildAgentContext(state, tasks, snap, now)
	data, err := json.MarshalIndent(ctx, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize agent context: %w", err)
	}
	return writeAtomic(path, append(data, '\n'))
}

// buildSuggestions applies the rule set: low rolling averages suggest a
// lighter plan, best days route the hardest task, frequent skips get a
// warning, and historically weak weekdays flag conservative planning.
func buildSuggestions(snap Snapshot, state models.PlannerState, urgent []UrgentTask, now time.Time) []Suggestion {
	var out []Suggestion

	if snap.Rolling7DayAvg > 0 && snap.Rolling7DayAvg < 0.5 {
		out = append(out, Suggestion{
			Type:     "difficulty_adjustment",
			Message:  fmt.Sprintf("7-day completion average is low (%.0f%%). Consider a lighter plan or recovery mode.", snap.Rolling7DayAvg*100),
			Priority: "high",
		})
	}

	if len(snap.BestTimeBlocks) > 0 && len(urgent) > 0 {
		blocks := snap.BestTimeBlocks
		if len(blocks) > 2 {
			blocks = blocks[:2]
		}
		out = append(out, Suggestion{
			Type:     "scheduling",
			Message:  fmt.Sprintf("Schedule %q during your best day(s): %s.", urgent[0].Title, strings.Join(blocks, ", ")),
			Priority: "medium",
		})
	}

	skipped := snap.MostSkippedTasks
	if len(skipped) > 3 {
		skipped = skipped[:3]
	}
	for _, name := range skipped {
		out = append(out, Suggestion{
			Type:     "skip_warning",
			Message:  fmt.Sprintf("%q is frequently skipped. Consider breaking it into smaller chunks or re-prioritizing.", name),
			Priority: "medium",
		})
	}

	if len(snap.CompletionByWeekday) > 0 {
		today := string(models.WeekdayOf(now.Weekday()))
		if rate, ok := snap.CompletionByWeekday[today]; ok && rate < 0.4 {
			out = append(out, Suggestion{
				Type:     "weekday_warning",
				Message:  fmt.Sprintf("Historically, %s has a low completion rate (%.0f%%). Plan conservatively.", today, rate*100),
				Priority: "medium",
			})
		}
	}

	if state.LastRating == models.RatingBad && snap.RecoverySuccessRate > 0.6 {
		out = append(out, Suggestion{
			Type:     "recovery_suggestion",
			Message:  fmt.Sprintf("Recovery mode has worked well (%.0f%% success rate). Consider using it today.", snap.RecoverySuccessRate*100),
			Priority: "high",
		})
	}

	return out
}

func round1(v float64) float64 {
	if v < 0 {
		return float64(int(v*10-0.5)) / 10
	}
	return float64(int(v*10+0.5)) / 10
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".agentctx-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
