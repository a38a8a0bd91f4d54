package tasks

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/dayweave/internal/cli"
	apperrors "github.com/julianstephens/dayweave/internal/errors"
	"github.com/julianstephens/dayweave/internal/models"
	"github.com/julianstephens/dayweave/internal/validation"
)

type TaskAddCmd struct {
	Title    string `arg:"" help:"Task title."`
	Type     string `short:"t" help:"Task type (deadline_project|weekly_budget|daily_ritual|open_ended)." required:""`
	Priority int    `short:"p" help:"Priority (1-10, higher is more urgent)." default:"5"`

	Remaining float64 `short:"r" help:"Remaining hours (deadline_project)."`
	Deadline  string  `short:"d" help:"Deadline date YYYY-MM-DD (deadline_project)."`
	Target    float64 `short:"w" help:"Target hours per week (weekly_budget)."`
	Minutes   int     `short:"m" help:"Estimated minutes per day (daily_ritual)."`

	MinChunk int    `help:"Minimum chunk size in minutes."`
	MaxChunk int    `help:"Maximum chunk size in minutes."`
	Notes    string `help:"Free-form notes."`
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	task := models.Task{
		ID:              uuid.New().String(),
		Title:           strings.TrimSpace(c.Title),
		Type:            models.TaskType(c.Type),
		Priority:        c.Priority,
		Status:          models.StatusActive,
		MinChunkMinutes: c.MinChunk,
		MaxChunkMinutes: c.MaxChunk,
		Notes:           c.Notes,
	}

	switch task.Type {
	case models.TaskDeadlineProject:
		remaining := c.Remaining
		task.RemainingHours = &remaining
		task.Deadline = c.Deadline
	case models.TaskWeeklyBudget:
		target := c.Target
		task.TargetHoursPerWeek = &target
	case models.TaskDailyRitual:
		task.EstimatedMinutesPerDay = c.Minutes
	}

	task.ApplyDefaults()
	if problems := task.Validate(); len(problems) > 0 {
		return apperrors.NewValidation(problems...)
	}

	return ctx.WithExclusiveLock(func() error {
		existing, err := ctx.Store.GetAllTasks()
		if err != nil {
			return err
		}
		if result := validation.New().ValidateTasks(append(existing, task)); result.HasConflicts() {
			fmt.Print(result.FormatReport())
		}

		if err := ctx.Store.AddTask(task); err != nil {
			return err
		}
		fmt.Printf("Added task: %s (ID: %s)\n", task.Title, task.ID)
		return nil
	})
}
