package system

import (
	"fmt"

	"github.com/julianstephens/dayweave/internal/cli"
	"github.com/julianstephens/dayweave/internal/models"
	"github.com/julianstephens/dayweave/internal/utils"
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	today := ctx.Today()

	state, err := ctx.Store.LoadState()
	if err != nil {
		return err
	}

	fmt.Printf("Today: %s\n", today)
	fmt.Printf("Streak: %d\n", state.Streak)
	if state.LastRating != "" {
		fmt.Printf("Last rating: %s (%s)\n", state.LastRating, state.LastMode)
	}
	if state.LastFinalizedDate == today {
		fmt.Println("Today is finalized")
	} else if state.LastFinalizedDate != "" {
		fmt.Printf("Last finalized: %s\n", state.LastFinalizedDate)
	}
	if state.LastSummary != "" {
		fmt.Printf("Last summary: %s\n", state.LastSummary)
	}

	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return err
	}
	byStatus := map[models.TaskStatus]int{}
	for _, t := range tasks {
		byStatus[t.Status]++
	}
	fmt.Printf("Tasks: %d active, %d paused, %d complete\n",
		byStatus[models.StatusActive], byStatus[models.StatusPaused], byStatus[models.StatusComplete])

	if plan, err := ctx.Store.LoadPlan(); err == nil {
		freshness := "stale"
		if plan.Date == today {
			freshness = "current"
		}
		fmt.Printf("Plan: %s (%s, %s of focused work)\n",
			plan.Date, freshness, utils.FormatDuration(plan.TotalMinutes))
	} else {
		fmt.Println("Plan: none")
	}

	if draft, err := ctx.Store.LoadDraft(); err == nil && draft.Day == today {
		fmt.Printf("Check-in: %d/%d done (mode: %s)\n", draft.DoneCount(), len(draft.Items), draft.Mode)
	}

	return nil
}
