package tasks

import (
	"fmt"
	"time"

	"github.com/julianstephens/dayweave/internal/cli"
	"github.com/julianstephens/dayweave/internal/models"
	"github.com/julianstephens/dayweave/internal/scheduler"
	"github.com/julianstephens/dayweave/internal/utils"
)

type TaskListCmd struct {
	ActiveOnly bool `help:"Show only active tasks."`
	ShowIDs    bool `help:"Show task IDs." name:"show-ids"`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	today, err := utils.ParseDate(ctx.Today())
	if err != nil {
		today = time.Now().UTC()
	}
	src := ctx.Suggestions()

	fmt.Println("Tasks:")
	for _, task := range tasks {
		if c.ActiveOnly && task.Status != models.StatusActive {
			continue
		}

		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", task.ID)
		}

		fmt.Printf("  [%s] %s%s - %s, priority %d, score %.1f\n",
			task.Status, task.Title, idStr, task.Type, task.Priority,
			scheduler.Score(task, today, src.BoostFor(task.ID)))

		switch task.Type {
		case models.TaskDeadlineProject:
			if task.RemainingHours != nil {
				fmt.Printf("      %.1fh remaining, due %s (%dd)\n",
					*task.RemainingHours, task.Deadline, task.DaysUntilDeadline(today))
			}
		case models.TaskWeeklyBudget:
			if task.TargetHoursPerWeek != nil {
				fmt.Printf("      %.1fh / %.1fh this week (gap %.1fh)\n",
					task.HoursThisWeek, *task.TargetHoursPerWeek, task.WeeklyGapHours())
			}
		case models.TaskDailyRitual:
			fmt.Printf("      %dm per day\n", task.EstimatedMinutesPerDay)
		}
	}

	return nil
}
