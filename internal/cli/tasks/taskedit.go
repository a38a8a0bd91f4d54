package tasks

import (
	"fmt"

	"github.com/julianstephens/dayweave/internal/cli"
	apperrors "github.com/julianstephens/dayweave/internal/errors"
	"github.com/julianstephens/dayweave/internal/models"
)

type TaskEditCmd struct {
	ID string `arg:"" help:"Task ID to edit."`

	Title     *string  `help:"New title."`
	Priority  *int     `short:"p" help:"New priority (1-10)."`
	Status    *string  `short:"s" help:"New status (active|paused|complete)."`
	Remaining *float64 `short:"r" help:"New remaining hours (deadline_project)."`
	Deadline  *string  `short:"d" help:"New deadline date (deadline_project)."`
	Target    *float64 `short:"w" help:"New target hours per week (weekly_budget)."`
	Minutes   *int     `short:"m" help:"New estimated minutes per day (daily_ritual)."`
	MinChunk  *int     `help:"New minimum chunk size in minutes."`
	MaxChunk  *int     `help:"New maximum chunk size in minutes."`
	Notes     *string  `help:"New notes."`
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	return ctx.WithExclusiveLock(func() error {
		task, err := ctx.Store.GetTask(c.ID)
		if err != nil {
			return err
		}

		if c.Title != nil {
			task.Title = *c.Title
		}
		if c.Priority != nil {
			task.Priority = *c.Priority
		}
		if c.Status != nil {
			task.Status = models.TaskStatus(*c.Status)
		}
		if c.Remaining != nil {
			task.RemainingHours = c.Remaining
		}
		if c.Deadline != nil {
			task.Deadline = *c.Deadline
		}
		if c.Target != nil {
			task.TargetHoursPerWeek = c.Target
		}
		if c.Minutes != nil {
			task.EstimatedMinutesPerDay = *c.Minutes
		}
		if c.MinChunk != nil {
			task.MinChunkMinutes = *c.MinChunk
		}
		if c.MaxChunk != nil {
			task.MaxChunkMinutes = *c.MaxChunk
		}
		if c.Notes != nil {
			task.Notes = *c.Notes
		}

		if problems := task.Validate(); len(problems) > 0 {
			return apperrors.NewValidation(problems...)
		}

		if err := ctx.Store.UpdateTask(task); err != nil {
			return err
		}
		fmt.Printf("Updated task: %s\n", task.Title)
		return nil
	})
}
