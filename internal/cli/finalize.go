package cli

import (
	"fmt"
	"reflect"
	"time"

	"github.com/julianstephens/dayweave/internal/analytics"
	"github.com/julianstephens/dayweave/internal/finalize"
	"github.com/julianstephens/dayweave/internal/models"
	"github.com/julianstephens/dayweave/internal/storage"
)

type FinalizeCmd struct {
	PlanEdited bool `help:"Treat the plan as actively edited today (counts toward the streak)."`
}

func (c *FinalizeCmd) Run(ctx *Context) error {
	today := ctx.Today()

	var result finalize.Result
	err := ctx.WithExclusiveLock(func() error {
		draft, err := ctx.Store.LoadDraft()
		if err != nil {
			return err
		}
		if draft.Day != today {
			// No check-in happened; finalize still runs, seeding an empty
			// draft from the plan so skipped items land in the reflection.
			draft = models.CheckinDraft{Day: today, Mode: models.ModeCommit}
			if plan, err := ctx.Store.LoadPlan(); err == nil && plan.Date == today {
				for _, item := range plan.Checklist {
					draft.Items = append(draft.Items, models.CheckinItem{
						TaskID: item.TaskID,
						Label:  item.Label,
					})
				}
			}
		}

		planEdited := c.PlanEdited || planChangedToday(ctx, today)

		f := &finalize.Finalizer{
			Tasks:  ctx.Store,
			State:  ctx.Store,
			Log:    ctx.ReflectionLog(),
			Drafts: ctx.Store,
			Hooks:  ctx.HookRunner(),
			PostSteps: []finalize.PostStep{
				func() error { return writeAgentContext(ctx) },
			},
		}

		result, err = f.Run(today, draft, planEdited)
		return err
	})
	if err != nil {
		return err
	}

	if result.AlreadyFinalized {
		fmt.Printf("Already finalized %s (rating: %s, streak: %d)\n", today, result.Rating, result.Streak)
		return nil
	}

	fmt.Printf("Finalized %s\n", today)
	fmt.Printf("  Rating: %s\n", result.Rating)
	fmt.Printf("  Streak: %d\n", result.Streak)
	for _, update := range result.TaskUpdates {
		fmt.Printf("  Progress: %s\n", update)
	}
	for _, warning := range result.Warnings {
		fmt.Printf("  Warning: %s\n", warning)
	}
	return nil
}

// planChangedToday reports whether today's plan differs from the previous
// snapshot, the default signal for "the user engaged with the plan".
func planChangedToday(ctx *Context, today string) bool {
	current, err := ctx.Store.LoadPlan()
	if err != nil || current.Date != today {
		return false
	}
	previous, err := ctx.Store.LoadPreviousPlan()
	if err != nil {
		return true
	}
	return !reflect.DeepEqual(current, previous)
}

func writeAgentContext(ctx *Context) error {
	state, err := ctx.Store.LoadState()
	if err != nil {
		return fmt.Errorf("agent context: %w", err)
	}
	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return fmt.Errorf("agent context: %w", err)
	}
	snap := ctx.Suggestions().Snapshot()
	path := storage.AgentContextPath(ctx.Store.Root())
	if err := analytics.WriteAgentContext(path, state, tasks, snap, time.Now()); err != nil {
		return fmt.Errorf("agent context: %w", err)
	}
	return nil
}
