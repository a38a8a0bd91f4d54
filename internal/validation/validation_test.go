package validation

import (
	"strings"
	"testing"

	"github.com/julianstephens/dayweave/internal/models"
)

func hours(h float64) *float64 { return &h }

func window(start, end string) models.TimeRange {
	return models.TimeRange{Start: start, End: end}
}

func TestValidateTasks_DuplicateIDAndTitle(t *testing.T) {
	tasks := []models.Task{
		{ID: "a", Title: "Gym", Type: models.TaskOpenEnded, Priority: 5, MinChunkMinutes: 25, MaxChunkMinutes: 90},
		{ID: "a", Title: "Reading", Type: models.TaskOpenEnded, Priority: 5, MinChunkMinutes: 25, MaxChunkMinutes: 90},
		{ID: "b", Title: "Gym", Type: models.TaskOpenEnded, Priority: 5, MinChunkMinutes: 25, MaxChunkMinutes: 90},
	}

	result := New().ValidateTasks(tasks)
	if !result.HasConflicts() {
		t.Fatal("expected conflicts")
	}

	var sawDupID, sawDupTitle bool
	for _, c := range result.Conflicts {
		switch c.Type {
		case ConflictDuplicateTaskID:
			sawDupID = true
		case ConflictDuplicateTaskTitle:
			sawDupTitle = true
		}
	}
	if !sawDupID {
		t.Error("expected duplicate-ID conflict")
	}
	if !sawDupTitle {
		t.Error("expected duplicate-title conflict")
	}
}

func TestValidateTasks_SchemaProblemsSurface(t *testing.T) {
	tasks := []models.Task{
		{ID: "a", Title: "Paper", Type: models.TaskDeadlineProject, Priority: 5, MinChunkMinutes: 25, MaxChunkMinutes: 90},
	}

	result := New().ValidateTasks(tasks)
	if !result.HasConflicts() {
		t.Fatal("expected invalid-task conflicts")
	}
	if result.Conflicts[0].Type != ConflictInvalidTask {
		t.Errorf("expected invalid_task, got %s", result.Conflicts[0].Type)
	}
}

func TestValidateTasks_CleanSetPasses(t *testing.T) {
	tasks := []models.Task{
		{ID: "a", Title: "Gym", Type: models.TaskWeeklyBudget, Priority: 4, TargetHoursPerWeek: hours(3), MinChunkMinutes: 25, MaxChunkMinutes: 60},
		{ID: "b", Title: "Paper", Type: models.TaskDeadlineProject, Priority: 5, RemainingHours: hours(6), Deadline: "2026-09-04", MinChunkMinutes: 60, MaxChunkMinutes: 120},
	}

	if result := New().ValidateTasks(tasks); result.HasConflicts() {
		t.Errorf("expected clean result, got %v", result.Conflicts)
	}
}

func TestValidateProfile_OverlapUsesCommuteWidenedWindows(t *testing.T) {
	profile := models.Profile{
		WeeklyEvents: []models.FixedEvent{
			{Label: "clinic", Day: models.Monday, Window: window("14:00", "15:00"), CommuteMin: 20},
			{Label: "class", Day: models.Monday, Window: window("15:10", "16:00")},
		},
	}

	result := New().ValidateProfile(profile)
	if !result.HasConflicts() {
		t.Fatal("expected overlap after commute widening")
	}
	c := result.Conflicts[0]
	if c.Type != ConflictOverlappingEvents || c.Day != "mon" {
		t.Errorf("unexpected conflict: %+v", c)
	}
	if !strings.Contains(c.Description, "commute") {
		t.Errorf("description should mention commute buffers: %s", c.Description)
	}
}

func TestValidateProfile_DisjointDaysDoNotConflict(t *testing.T) {
	profile := models.Profile{
		WeeklyEvents: []models.FixedEvent{
			{Label: "clinic", Day: models.Monday, Window: window("14:00", "15:00")},
			{Label: "class", Day: models.Tuesday, Window: window("14:00", "15:00")},
		},
	}

	if result := New().ValidateProfile(profile); result.HasConflicts() {
		t.Errorf("same window on different days is fine, got %v", result.Conflicts)
	}
}

func TestValidateProfile_InvalidWindowFlagged(t *testing.T) {
	profile := models.Profile{
		WorkBlocks: []models.WorkBlock{{Window: window("17:00", "09:00")}},
	}

	result := New().ValidateProfile(profile)
	if !result.HasConflicts() || result.Conflicts[0].Type != ConflictInvalidWindow {
		t.Errorf("expected invalid-window conflict, got %v", result.Conflicts)
	}
}

func TestValidatePlan_MissingTaskID(t *testing.T) {
	plan := models.Plan{
		Date: "2026-08-26",
		Schedule: []models.ScheduleEntry{
			{Kind: models.EntryTask, TaskID: "ghost", Label: "Ghost work", Window: window("09:00", "10:00")},
		},
	}

	result := New().ValidatePlan(plan, []models.Task{{ID: "real"}})
	if !result.HasConflicts() || result.Conflicts[0].Type != ConflictMissingTaskID {
		t.Errorf("expected missing-task conflict, got %v", result.Conflicts)
	}
}

func TestValidatePlan_TaskOverlapFlagged(t *testing.T) {
	plan := models.Plan{
		Date: "2026-08-26",
		Schedule: []models.ScheduleEntry{
			{Kind: models.EntryTask, TaskID: "a", Label: "Deep work", Window: window("09:00", "10:30")},
			{Kind: models.EntryEvent, Label: "standup", Window: window("10:00", "10:15")},
		},
	}

	result := New().ValidatePlan(plan, []models.Task{{ID: "a"}})
	if !result.HasConflicts() || result.Conflicts[0].Type != ConflictOverlappingEntries {
		t.Errorf("expected overlap conflict, got %v", result.Conflicts)
	}
}

func TestValidatePlan_ConstraintRowsMayCoincide(t *testing.T) {
	plan := models.Plan{
		Date: "2026-08-26",
		Schedule: []models.ScheduleEntry{
			{Kind: models.EntryRoutine, Label: "lunch", Window: window("12:00", "13:00")},
			{Kind: models.EntryEvent, Label: "team lunch", Window: window("12:00", "13:00")},
		},
	}

	if result := New().ValidatePlan(plan, nil); result.HasConflicts() {
		t.Errorf("non-task rows may coincide, got %v", result.Conflicts)
	}
}

func TestFormatReport(t *testing.T) {
	empty := Result{}
	if got := empty.FormatReport(); got != "No conflicts detected." {
		t.Errorf("unexpected clean report: %q", got)
	}

	r := Result{Conflicts: []Conflict{{Description: "something is off"}}}
	if got := r.FormatReport(); !strings.Contains(got, "something is off") {
		t.Errorf("expected conflict listed, got %q", got)
	}
}
