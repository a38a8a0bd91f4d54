package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/dayweave/internal/constants"
	"github.com/julianstephens/dayweave/internal/models"
)

// Scheduler turns a day's constraints and the task collection into a
// time-blocked plan. It only reads tasks and never touches planner state.
type Scheduler struct {
	// Suggestions is optional; nil means no analytics hints.
	Suggestions SuggestionSource
}

func New() *Scheduler {
	return &Scheduler{}
}

// GeneratePlan creates the plan for the given date from the profile's
// constraints and the active tasks. The previous plan, if any, is the
// caller's to snapshot; plans are regenerated idempotently.
func (s *Scheduler) GeneratePlan(date string, profile *models.Profile, tasks []models.Task) (models.Plan, error) {
	day, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return models.Plan{}, fmt.Errorf("invalid date format: %w", err)
	}
	weekday := models.WeekdayOfDate(day)

	cs := profile.ConstraintsFor(weekday)
	slots, err := ComputeSlots(cs, profile.MinSlotMin)
	if err != nil {
		return models.Plan{}, err
	}

	cands := s.buildCandidates(tasks, day, weekday)
	entries, carryover := allocate(slots, cands)

	plan := models.Plan{
		Date:          date,
		TopPriorities: topPriorities(cands, constants.TopPriorityCount),
		Checklist:     buildChecklist(entries, cands),
		Carryover:     carryover,
	}

	for _, e := range entries {
		plan.TotalMinutes += e.Minutes
	}

	// Fold fixed events and routines into the schedule as informational
	// rows, then order everything chronologically.
	for _, r := range cs.Routines {
		entries = append(entries, models.ScheduleEntry{
			Kind:    models.EntryRoutine,
			Label:   r.Label,
			Window:  r.Window,
			Minutes: r.Window.DurationMinutes(),
		})
	}
	for _, e := range cs.Events {
		entries = append(entries, models.ScheduleEntry{
			Kind:    models.EntryEvent,
			Label:   e.Label,
			Window:  e.Window,
			Minutes: e.Window.DurationMinutes(),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		si, sj := entries[i].Window.StartMinutes(), entries[j].Window.StartMinutes()
		if si != sj {
			return si < sj
		}
		return entries[i].Label < entries[j].Label
	})
	plan.Schedule = entries

	return plan, nil
}

func (s *Scheduler) buildCandidates(tasks []models.Task, day time.Time, weekday models.Weekday) []candidate {
	var cands []candidate
	for _, t := range tasks {
		if !t.Schedulable() {
			continue
		}
		t.ApplyDefaults()

		var boost float64
		offDay := false
		if s.Suggestions != nil {
			boost = s.Suggestions.BoostFor(t.ID)
			if preferred, ok := s.Suggestions.PreferredDayFor(t.ID); ok {
				offDay = preferred != weekday
			}
		}

		need := neededMinutes(t)
		if need <= 0 {
			continue
		}

		cands = append(cands, candidate{
			task:   t,
			score:  Score(t, day, boost),
			need:   need,
			offDay: offDay,
		})
	}
	return cands
}
