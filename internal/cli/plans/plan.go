package plans

import (
	"fmt"

	"github.com/julianstephens/dayweave/internal/cli"
	"github.com/julianstephens/dayweave/internal/hooks"
	"github.com/julianstephens/dayweave/internal/logger"
	"github.com/julianstephens/dayweave/internal/models"
	"github.com/julianstephens/dayweave/internal/utils"
	"github.com/julianstephens/dayweave/internal/validation"
)

type PlanCmd struct {
	Date string `arg:"" optional:"" help:"Plan date (YYYY-MM-DD). Defaults to today."`
}

func (c *PlanCmd) Run(ctx *cli.Context) error {
	date := c.Date
	if date == "" {
		date = ctx.Today()
	}
	if _, err := utils.ParseDate(date); err != nil {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", date, err)
	}

	runner := ctx.HookRunner()
	runner.Run(hooks.PrePlanGenerate, map[string]any{"date": date})

	var plan models.Plan
	err := ctx.WithExclusiveLock(func() error {
		profile, err := ctx.Store.GetProfile()
		if err != nil {
			return err
		}
		tasks, err := ctx.Store.ListActiveTasks()
		if err != nil {
			return err
		}

		if result := validation.New().ValidateProfile(profile); result.HasConflicts() {
			fmt.Print(result.FormatReport())
		}

		ctx.Scheduler.Suggestions = ctx.Suggestions()
		plan, err = ctx.Scheduler.GeneratePlan(date, &profile, tasks)
		if err != nil {
			return err
		}

		if result := validation.New().ValidatePlan(plan, tasks); result.HasConflicts() {
			logger.Warn("Generated plan has conflicts", "date", date)
			fmt.Print(result.FormatReport())
		}

		return ctx.Store.SavePlan(plan)
	})
	if err != nil {
		return err
	}

	printPlan(plan)
	runner.Run(hooks.PostPlanGenerate, map[string]any{
		"date":          date,
		"total_minutes": plan.TotalMinutes,
		"carryover":     plan.Carryover,
	})
	return nil
}

func printPlan(plan models.Plan) {
	fmt.Printf("Plan for %s (%s of focused work)\n", plan.Date, utils.FormatDuration(plan.TotalMinutes))

	if len(plan.TopPriorities) > 0 {
		fmt.Println("\nTop priorities:")
		for i, p := range plan.TopPriorities {
			fmt.Printf("  %d. %s\n", i+1, p)
		}
	}

	fmt.Println("\nSchedule:")
	if len(plan.Schedule) == 0 {
		fmt.Println("  (no free time today)")
	}
	for _, e := range plan.Schedule {
		marker := " "
		if e.Kind != models.EntryTask {
			marker = "·"
		}
		fmt.Printf("  %s %s  %s (%s)\n", marker, e.Window, e.Label, utils.FormatDuration(e.Minutes))
	}

	if len(plan.Checklist) > 0 {
		fmt.Println("\nChecklist:")
		for _, item := range plan.Checklist {
			fmt.Printf("  [ ] %s\n", item.Label)
		}
	}

	if len(plan.Carryover) > 0 {
		fmt.Println("\nCarryover (no room today):")
		for _, id := range plan.Carryover {
			fmt.Printf("  - %s\n", id)
		}
	}
}

// DayCmd prints the stored plan without regenerating it.
type DayCmd struct {
	Previous bool `help:"Show the previous plan snapshot instead."`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	var plan models.Plan
	var err error
	if c.Previous {
		plan, err = ctx.Store.LoadPreviousPlan()
	} else {
		plan, err = ctx.Store.LoadPlan()
	}
	if err != nil {
		return err
	}
	printPlan(plan)
	return nil
}
