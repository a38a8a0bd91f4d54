package validation

import (
	"fmt"
	"sort"

	"github.com/julianstephens/dayweave/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateTaskID    ConflictType = "duplicate_task_id"
	ConflictDuplicateTaskTitle ConflictType = "duplicate_task_title"
	ConflictInvalidTask        ConflictType = "invalid_task"
	ConflictInvalidWindow      ConflictType = "invalid_window"
	ConflictOverlappingEvents  ConflictType = "overlapping_events"
	ConflictOverlappingEntries ConflictType = "overlapping_entries"
	ConflictMissingTaskID      ConflictType = "missing_task_id"
)

// Conflict represents a detected conflict in the profile, tasks, or plan
type Conflict struct {
	Type        ConflictType
	Description string
	Day         string   // weekday or date, if applicable
	Items       []string // task/event labels involved
}

// Result contains all detected conflicts
type Result struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (r *Result) FormatReport() string {
	if !r.HasConflicts() {
		return "No conflicts detected."
	}
	report := "Conflicts detected:\n"
	for _, c := range r.Conflicts {
		report += fmt.Sprintf("- %s\n", c.Description)
	}
	return report
}

// Validator validates tasks, profiles, and plans for conflicts
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateTasks checks the task collection: per-task schema problems,
// duplicate IDs, and duplicate titles.
func (v *Validator) ValidateTasks(tasks []models.Task) Result {
	result := Result{Conflicts: []Conflict{}}

	idCount := make(map[string][]string)
	titleCount := make(map[string][]string)
	for _, task := range tasks {
		for _, problem := range task.Validate() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTask,
				Description: fmt.Sprintf("Task %q: %s", task.Title, problem),
				Items:       []string{task.ID},
			})
		}
		if task.ID != "" {
			idCount[task.ID] = append(idCount[task.ID], task.Title)
		}
		if task.Title != "" {
			titleCount[task.Title] = append(titleCount[task.Title], task.ID)
		}
	}

	for _, id := range sortedKeys(idCount) {
		if titles := idCount[id]; len(titles) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateTaskID,
				Description: fmt.Sprintf("Duplicate task ID %q used by: %v", id, titles),
				Items:       titles,
			})
		}
	}
	for _, title := range sortedKeys(titleCount) {
		if ids := titleCount[title]; len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateTaskTitle,
				Description: fmt.Sprintf("Duplicate task title %q (IDs: %v)", title, ids),
				Items:       []string{title},
			})
		}
	}

	return result
}

// ValidateProfile checks every window in the profile and flags fixed
// events that overlap on the same weekday after commute widening.
func (v *Validator) ValidateProfile(profile models.Profile) Result {
	result := Result{Conflicts: []Conflict{}}

	for _, b := range profile.WorkBlocks {
		if err := b.Window.Validate(); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidWindow,
				Description: fmt.Sprintf("Work block window %s: %v", b.Window, err),
			})
		}
	}
	for name, r := range profile.FixedRoutines {
		if err := r.Window.Validate(); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidWindow,
				Description: fmt.Sprintf("Routine %q window %s: %v", name, r.Window, err),
				Items:       []string{name},
			})
		}
	}
	for _, e := range profile.WeeklyEvents {
		if err := e.Window.Validate(); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidWindow,
				Description: fmt.Sprintf("Event %q window %s: %v", e.Label, e.Window, err),
				Day:         string(e.Day),
				Items:       []string{e.Label},
			})
		}
	}

	// Overlap check uses the commute-widened windows, since that is the
	// span the scheduler actually blocks out.
	byDay := make(map[models.Weekday][]models.FixedEvent)
	for _, e := range profile.WeeklyEvents {
		if e.Window.Validate() == nil {
			byDay[e.Day] = append(byDay[e.Day], e)
		}
	}
	for day, events := range byDay {
		sort.Slice(events, func(i, j int) bool {
			return events[i].Window.Start < events[j].Window.Start
		})
		for i := 0; i < len(events); i++ {
			for j := i + 1; j < len(events); j++ {
				w1 := events[i].BlockedWindow()
				w2 := events[j].BlockedWindow()
				if w1.Overlaps(w2) {
					result.Conflicts = append(result.Conflicts, Conflict{
						Type: ConflictOverlappingEvents,
						Description: fmt.Sprintf("Events overlap on %s: %q (%s) and %q (%s), including commute buffers",
							day, events[i].Label, events[i].Window, events[j].Label, events[j].Window),
						Day:   string(day),
						Items: []string{events[i].Label, events[j].Label},
					})
				}
			}
		}
	}

	return result
}

// ValidatePlan checks a generated plan: every allocation must reference a
// known task and no two schedule entries may overlap.
func (v *Validator) ValidatePlan(plan models.Plan, tasks []models.Task) Result {
	result := Result{Conflicts: []Conflict{}}

	known := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		known[t.ID] = true
	}

	entries := plan.Schedule
	for _, e := range entries {
		if e.Kind == models.EntryTask && !known[e.TaskID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingTaskID,
				Description: fmt.Sprintf("%s: schedule entry %q references missing task ID: %s", plan.Date, e.Label, e.TaskID),
				Day:         plan.Date,
				Items:       []string{e.Label},
			})
		}
	}

	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			// Fixed events and routines may legitimately coincide; only an
			// allocated chunk overlapping anything is a real conflict.
			if entries[i].Kind != models.EntryTask && entries[j].Kind != models.EntryTask {
				continue
			}
			if entries[i].Window.Overlaps(entries[j].Window) {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type: ConflictOverlappingEntries,
					Description: fmt.Sprintf("%s: %s %q overlaps %q",
						plan.Date, entries[i].Window, entries[i].Label, entries[j].Label),
					Day:   plan.Date,
					Items: []string{entries[i].Label, entries[j].Label},
				})
			}
		}
	}

	return result
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
