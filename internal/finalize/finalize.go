package finalize

import (
	"fmt"
	"time"

	"github.com/julianstephens/dayweave/internal/constants"
	apperrors "github.com/julianstephens/dayweave/internal/errors"
	"github.com/julianstephens/dayweave/internal/hooks"
	"github.com/julianstephens/dayweave/internal/logger"
	"github.com/julianstephens/dayweave/internal/models"
	"github.com/julianstephens/dayweave/internal/reflections"
)

// TaskStore is the narrow task-collection contract the finalizer credits
// progress through. The store owns serialization and archival; the
// finalizer never touches the on-disk representation.
type TaskStore interface {
	// CreditProgress applies minutes of completed work to the task,
	// honoring its type, and returns the updated task.
	CreditProgress(taskID string, minutes int) (models.Task, error)
	// WeekStart is the configured week-start weekday for budget resets.
	WeekStart() (models.Weekday, error)
	// ResetWeeklyHours zeroes hours_this_week on every weekly budget task.
	ResetWeeklyHours() error
}

// StateStore persists the planner state. Callers hold the workspace lock
// for the whole finalize run.
type StateStore interface {
	LoadState() (models.PlannerState, error)
	SaveState(models.PlannerState) error
}

// ReflectionLog receives the day's structured entry; the log owns the
// file format.
type ReflectionLog interface {
	Prepend(entry reflections.Entry) error
}

// DraftStore clears the check-in draft once everything else succeeded.
type DraftStore interface {
	ClearDraft(day string) error
}

// HookRunner dispatches lifecycle hooks; failures never block finalize.
type HookRunner interface {
	Run(point string, eventCtx map[string]any) []hooks.Outcome
}

// PostStep is an optional collaborator invoked after the transactional
// core (analytics refresh, agent-context generation). Failures are
// reported as warnings only.
type PostStep func() error

// step tracks progress through the finalization state machine.
type step int

const (
	stepPending step = iota
	stepValidated
	stepRatingComputed
	stepReflectionAppended
	stepStateUpdated
	stepProgressCredited
	stepDone
)

func (s step) String() string {
	switch s {
	case stepPending:
		return "pending"
	case stepValidated:
		return "validated"
	case stepRatingComputed:
		return "rating_computed"
	case stepReflectionAppended:
		return "reflection_appended"
	case stepStateUpdated:
		return "state_updated"
	case stepProgressCredited:
		return "progress_credited"
	default:
		return "done"
	}
}

// Finalizer drives the nightly pipeline: validate, guard, rate, append
// reflection, update state, credit progress, then best-effort post steps
// and draft clearing.
type Finalizer struct {
	Tasks     TaskStore
	State     StateStore
	Log       ReflectionLog
	Drafts    DraftStore
	Hooks     HookRunner
	PostSteps []PostStep

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

// Result is the outcome of one finalize run.
type Result struct {
	Day              string
	AlreadyFinalized bool
	Rating           models.Rating
	Streak           int
	State            models.PlannerState
	Record           models.DayRecord
	Entry            reflections.Entry
	TaskUpdates      []string
	Warnings         []string
}

func (f *Finalizer) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

// Run finalizes the given day. It is idempotent: a second call for an
// already-finalized day short-circuits to a no-op result. Any failure at
// or before the state update leaves persisted state untouched except for
// the reflection log, which a retry simply re-prepends.
func (f *Finalizer) Run(today string, draft models.CheckinDraft, planEdited bool) (Result, error) {
	res := Result{Day: today}
	current := stepPending

	// 1. Validate. Nothing is touched on failure.
	if problems := draft.Validate(); len(problems) > 0 {
		return res, apperrors.NewValidation(problems...)
	}
	if draft.Day != today {
		return res, apperrors.NewValidation(fmt.Sprintf("draft is for %s, not %s", draft.Day, today))
	}
	current = stepValidated

	state, err := f.State.LoadState()
	if err != nil {
		return res, fmt.Errorf("finalize (%s): load state: %w", current, err)
	}

	// 2. Idempotency guard: finalize is safe to call any number of times
	// per day; only the first call mutates anything.
	if state.LastFinalizedDate == today {
		res.AlreadyFinalized = true
		res.State = state
		res.Rating = state.LastRating
		res.Streak = state.Streak
		logger.Debug("Finalize skipped, already finalized", "day", today)
		return res, nil
	}

	res.Warnings = appendHookWarnings(res.Warnings, f.runHooks(hooks.PreFinalize, map[string]any{"day": today}))

	mode := draft.Mode
	if mode == "" {
		mode = models.ModeCommit
	}

	// 3. Compute rating and streak. Pure computation; nothing persisted.
	doneCount := draft.DoneCount()
	total := len(draft.Items)

	rating := ComputeRating(doneCount, total, draft.Reflection, draft.AnyTimedDone())
	rating = ApplyRecoveryUpgrade(rating, mode, doneCount, draft.Reflection)

	counted := CountsForStreak(doneCount, draft.Reflection, planEdited)
	streak := state.Streak
	lastStreakDate := state.LastStreakDate
	if counted && lastStreakDate != today {
		streak = nextStreak(streak, lastStreakDate, today)
		lastStreakDate = today
	} else if !counted {
		streak = 0
	}
	current = stepRatingComputed

	var doneItems, skipped []string
	var minutesTotal int
	notes := make(map[string]string)
	for _, it := range draft.Items {
		if it.Done {
			doneItems = append(doneItems, it.Label)
			minutesTotal += it.MinutesSpent
		} else {
			skipped = append(skipped, it.Label)
		}
		if it.Comment != "" {
			notes[it.Label] = it.Comment
		}
	}

	summary := Summarize(today, rating, doneItems, minutesTotal, draft.Reflection)

	entry := reflections.Entry{
		Day:        today,
		Time:       f.now().Format(time.RFC3339),
		Rating:     rating,
		Mode:       mode,
		DoneItems:  doneItems,
		Skipped:    skipped,
		Notes:      notes,
		Reflection: draft.Reflection,
		Summary:    summary,
	}

	// 4. Append reflection. First persisted effect; a failure here aborts
	// with the guard still unset.
	if err := f.Log.Prepend(entry); err != nil {
		return res, fmt.Errorf("finalize (%s): prepend reflection: %w", current, err)
	}
	current = stepReflectionAppended

	// 5. Update state. Saving last_finalized_date arms the idempotency
	// guard, so crediting below can never double-apply across retries.
	record := models.DayRecord{
		Day:           today,
		Rating:        rating,
		Mode:          mode,
		StreakCounted: counted,
		DoneCount:     doneCount,
		Total:         total,
	}
	state.Streak = streak
	state.LastStreakDate = lastStreakDate
	state.LastRating = rating
	state.LastMode = mode
	state.LastSummary = summary
	state.LastFinalizedDate = today
	state.RecordDay(record, constants.HistoryLimit)
	f.maybeRollWeek(&state, today, &res)

	if err := f.State.SaveState(state); err != nil {
		return res, fmt.Errorf("finalize (%s): save state: %w", current, err)
	}
	current = stepStateUpdated

	// 6. Credit task progress, exactly once per item per day, guaranteed
	// by the guard above rather than per-item dedup.
	for _, it := range draft.Items {
		if !it.Done || it.TaskID == "" {
			continue
		}
		minutes := it.MinutesSpent
		if minutes <= 0 {
			minutes = 30
		}
		updated, err := f.Tasks.CreditProgress(it.TaskID, minutes)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("credit %s: %v", it.TaskID, err))
			continue
		}
		res.TaskUpdates = append(res.TaskUpdates, fmt.Sprintf("%s: +%dmin", it.TaskID, minutes))
		if updated.Status == models.StatusComplete {
			res.Warnings = appendHookWarnings(res.Warnings, f.runHooks(hooks.OnTaskComplete, map[string]any{
				"day":     today,
				"task_id": updated.ID,
			}))
		}
	}
	current = stepProgressCredited

	// 7. Post steps and hooks: best-effort, never roll back the above.
	for _, post := range f.PostSteps {
		if err := post(); err != nil {
			res.Warnings = append(res.Warnings, err.Error())
		}
	}
	res.Warnings = appendHookWarnings(res.Warnings, f.runHooks(hooks.PostFinalize, map[string]any{
		"day":        today,
		"rating":     string(rating),
		"streak":     streak,
		"done_count": doneCount,
		"total":      total,
	}))

	// 8. Clear the draft for the next day. Final, irrevocable step.
	if err := f.Drafts.ClearDraft(today); err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("clear draft: %v", err))
	}
	current = stepDone
	logger.Debug("Finalize pipeline complete", "day", today, "step", current.String())

	res.Rating = rating
	res.Streak = streak
	res.State = state
	res.Record = record
	res.Entry = entry
	logger.Info("Day finalized", "day", today, "rating", rating, "streak", streak)
	return res, nil
}

// nextStreak extends the streak when yesterday (or earlier today) was the
// last counted day, and restarts at 1 after a gap.
func nextStreak(streak int, lastStreakDate, today string) int {
	if lastStreakDate == "" {
		return 1
	}
	last, err := time.Parse(constants.DateFormat, lastStreakDate)
	if err != nil {
		return 1
	}
	cur, err := time.Parse(constants.DateFormat, today)
	if err != nil {
		return 1
	}
	if int(cur.Sub(last).Hours()/24) > 1 {
		return 1
	}
	return streak + 1
}

// maybeRollWeek resets weekly budget hours when the configured week-start
// weekday comes around again.
func (f *Finalizer) maybeRollWeek(state *models.PlannerState, today string, res *Result) {
	day, err := time.Parse(constants.DateFormat, today)
	if err != nil {
		return
	}

	weekStart, err := f.Tasks.WeekStart()
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("week start lookup: %v", err))
		return
	}

	if state.WeekStartDate != "" {
		if last, err := time.Parse(constants.DateFormat, state.WeekStartDate); err == nil {
			if int(day.Sub(last).Hours()/24) < 7 {
				return
			}
		}
	}

	if models.WeekdayOfDate(day) == weekStart {
		if err := f.Tasks.ResetWeeklyHours(); err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("weekly budget reset: %v", err))
			return
		}
		state.WeekStartDate = today
		return
	}

	if state.WeekStartDate == "" {
		// Anchor tracking at the most recent week start without resetting.
		offset := (int(day.Weekday()) - weekdayIndex(weekStart) + 7) % 7
		state.WeekStartDate = day.AddDate(0, 0, -offset).Format(constants.DateFormat)
	}
}

func weekdayIndex(w models.Weekday) int {
	switch w {
	case models.Sunday:
		return 0
	case models.Monday:
		return 1
	case models.Tuesday:
		return 2
	case models.Wednesday:
		return 3
	case models.Thursday:
		return 4
	case models.Friday:
		return 5
	default:
		return 6
	}
}

func (f *Finalizer) runHooks(point string, eventCtx map[string]any) []hooks.Outcome {
	if f.Hooks == nil {
		return nil
	}
	return f.Hooks.Run(point, eventCtx)
}

func appendHookWarnings(warnings []string, outcomes []hooks.Outcome) []string {
	for _, o := range outcomes {
		if o.Failed() {
			hf := &apperrors.HookFailure{Command: o.Command, ExitCode: o.ExitCode, Stderr: o.Stderr}
			warnings = append(warnings, hf.Error())
		}
	}
	return warnings
}
