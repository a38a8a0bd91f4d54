package models

import (
	"strings"
	"testing"
)

func hours(h float64) *float64 { return &h }

func TestTaskValidate_TypeFieldInvariant(t *testing.T) {
	tests := []struct {
		name    string
		task    Task
		problem string // substring of an expected problem, empty for valid
	}{
		{
			name: "valid deadline project",
			task: Task{ID: "t1", Title: "Paper", Type: TaskDeadlineProject, Priority: 5,
				RemainingHours: hours(6), Deadline: "2026-09-04", MinChunkMinutes: 25, MaxChunkMinutes: 90},
		},
		{
			name:    "deadline project without remaining hours",
			task:    Task{ID: "t1", Title: "Paper", Type: TaskDeadlineProject, Priority: 5, Deadline: "2026-09-04", MinChunkMinutes: 25, MaxChunkMinutes: 90},
			problem: "requires remaining_hours",
		},
		{
			name: "deadline project with budget field",
			task: Task{ID: "t1", Title: "Paper", Type: TaskDeadlineProject, Priority: 5,
				RemainingHours: hours(6), Deadline: "2026-09-04", TargetHoursPerWeek: hours(3), MinChunkMinutes: 25, MaxChunkMinutes: 90},
			problem: "must not set target_hours_per_week",
		},
		{
			name:    "weekly budget with deadline fields",
			task:    Task{ID: "t2", Title: "Gym", Type: TaskWeeklyBudget, Priority: 4, TargetHoursPerWeek: hours(3), Deadline: "2026-09-04", MinChunkMinutes: 25, MaxChunkMinutes: 90},
			problem: "must not set deadline fields",
		},
		{
			name:    "ritual with budget field",
			task:    Task{ID: "t3", Title: "Stretch", Type: TaskDailyRitual, Priority: 3, TargetHoursPerWeek: hours(1), MinChunkMinutes: 10, MaxChunkMinutes: 20},
			problem: "must not set deadline or budget fields",
		},
		{
			name:    "malformed deadline date",
			task:    Task{ID: "t1", Title: "Paper", Type: TaskDeadlineProject, Priority: 5, RemainingHours: hours(6), Deadline: "04/09/2026", MinChunkMinutes: 25, MaxChunkMinutes: 90},
			problem: "invalid deadline date",
		},
		{
			name:    "priority out of range",
			task:    Task{ID: "t4", Title: "Read", Type: TaskOpenEnded, Priority: 11, MinChunkMinutes: 25, MaxChunkMinutes: 90},
			problem: "priority must be between 1 and 10",
		},
		{
			name:    "inverted chunk bounds",
			task:    Task{ID: "t4", Title: "Read", Type: TaskOpenEnded, Priority: 5, MinChunkMinutes: 90, MaxChunkMinutes: 25},
			problem: "min_chunk_minutes must not exceed max_chunk_minutes",
		},
		{
			name:    "unknown type",
			task:    Task{ID: "t5", Title: "Thing", Type: "someday", Priority: 5, MinChunkMinutes: 25, MaxChunkMinutes: 90},
			problem: "invalid task type",
		},
		{
			name:    "missing title",
			task:    Task{ID: "t6", Type: TaskOpenEnded, Priority: 5, MinChunkMinutes: 25, MaxChunkMinutes: 90},
			problem: "missing required field: title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := tt.task.Validate()
			if tt.problem == "" {
				if len(problems) != 0 {
					t.Errorf("expected valid, got %v", problems)
				}
				return
			}
			for _, p := range problems {
				if strings.Contains(p, tt.problem) {
					return
				}
			}
			t.Errorf("expected problem containing %q, got %v", tt.problem, problems)
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	task := Task{ID: "t1", Title: "Stretch", Type: TaskDailyRitual}
	task.ApplyDefaults()

	if task.Status != StatusActive {
		t.Errorf("expected active status, got %s", task.Status)
	}
	if task.Priority != 5 {
		t.Errorf("expected default priority 5, got %d", task.Priority)
	}
	if task.MinChunkMinutes != 25 || task.MaxChunkMinutes != 90 {
		t.Errorf("expected default chunk bounds 25/90, got %d/%d", task.MinChunkMinutes, task.MaxChunkMinutes)
	}
	if task.EstimatedMinutesPerDay != 20 {
		t.Errorf("expected default ritual estimate 20, got %d", task.EstimatedMinutesPerDay)
	}
}

func TestApplyProgress_DeadlineBurnsDown(t *testing.T) {
	task := Task{ID: "t1", Title: "Paper", Type: TaskDeadlineProject, Status: StatusActive, RemainingHours: hours(2)}

	if done := task.ApplyProgress(60); done {
		t.Error("one hour off two remaining must not complete the task")
	}
	if *task.RemainingHours != 1 {
		t.Errorf("expected 1 hour remaining, got %v", *task.RemainingHours)
	}

	if done := task.ApplyProgress(90); !done {
		t.Error("overshooting the remainder must complete the task")
	}
	if *task.RemainingHours != 0 {
		t.Errorf("expected remaining clamped at 0, got %v", *task.RemainingHours)
	}
	if task.Status != StatusComplete {
		t.Errorf("expected complete status, got %s", task.Status)
	}
}

func TestApplyProgress_WeeklyAccumulates(t *testing.T) {
	task := Task{ID: "t2", Title: "Gym", Type: TaskWeeklyBudget, Status: StatusActive, TargetHoursPerWeek: hours(3)}

	task.ApplyProgress(45)
	if task.HoursThisWeek != 0.75 {
		t.Errorf("expected 0.75 hours this week, got %v", task.HoursThisWeek)
	}
	if task.Status != StatusActive {
		t.Errorf("weekly budgets never complete, got %s", task.Status)
	}
}

func TestDaysUntilDeadline_FloorsAtOne(t *testing.T) {
	task := Task{Deadline: "2026-08-20"}
	today := mustDate(t, "2026-08-26")

	if got := task.DaysUntilDeadline(today); got != 1 {
		t.Errorf("expected floor of 1 for past deadline, got %d", got)
	}

	task.Deadline = "2026-08-29"
	if got := task.DaysUntilDeadline(today); got != 3 {
		t.Errorf("expected 3 days, got %d", got)
	}
}

func TestWeeklyGapHours_Clamped(t *testing.T) {
	task := Task{Type: TaskWeeklyBudget, TargetHoursPerWeek: hours(3), HoursThisWeek: 4}
	if got := task.WeeklyGapHours(); got != 0 {
		t.Errorf("expected overfilled budget clamped to 0, got %v", got)
	}

	task.HoursThisWeek = 1.5
	if got := task.WeeklyGapHours(); got != 1.5 {
		t.Errorf("expected gap 1.5, got %v", got)
	}
}

func TestFindTask(t *testing.T) {
	tf := TasksFile{Tasks: []Task{{ID: "a"}, {ID: "b"}}}
	if tf.FindTask("b") == nil {
		t.Error("expected to find b")
	}
	if tf.FindTask("z") != nil {
		t.Error("expected nil for unknown ID")
	}
}
