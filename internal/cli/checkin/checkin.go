package checkin

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/dayweave/internal/cli"
	"github.com/julianstephens/dayweave/internal/models"
	"github.com/julianstephens/dayweave/internal/utils"
)

// loadOrSeedDraft returns today's draft, seeding it from the plan
// checklist the first time the check-in is touched. A stale draft from a
// previous day is replaced, not merged.
func loadOrSeedDraft(ctx *cli.Context, today string) (models.CheckinDraft, error) {
	draft, err := ctx.Store.LoadDraft()
	if err != nil {
		return models.CheckinDraft{}, err
	}
	if draft.Day == today {
		return draft, nil
	}

	draft = models.CheckinDraft{Day: today, Mode: models.ModeCommit}
	if plan, err := ctx.Store.LoadPlan(); err == nil && plan.Date == today {
		for _, item := range plan.Checklist {
			draft.Items = append(draft.Items, models.CheckinItem{
				TaskID: item.TaskID,
				Label:  item.Label,
			})
		}
	}
	return draft, nil
}

func saveDraft(ctx *cli.Context, draft models.CheckinDraft) error {
	draft.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return ctx.Store.SaveDraft(draft)
}

// findItem matches an argument against draft items: exact task ID first,
// then title-prefix matching on the label.
func findItem(draft *models.CheckinDraft, ref string) *models.CheckinItem {
	for i := range draft.Items {
		if draft.Items[i].TaskID == ref {
			return &draft.Items[i]
		}
	}
	for i := range draft.Items {
		if utils.MatchTaskTitle(draft.Items[i].Label, ref) {
			return &draft.Items[i]
		}
	}
	return nil
}

type DoneCmd struct {
	Item    string `arg:"" help:"Checklist item to mark done (task ID or title)."`
	Minutes int    `short:"m" help:"Actual minutes spent."`
	Comment string `short:"c" help:"Comment on the item."`
}

func (c *DoneCmd) Run(ctx *cli.Context) error {
	today := ctx.Today()
	return ctx.WithExclusiveLock(func() error {
		draft, err := loadOrSeedDraft(ctx, today)
		if err != nil {
			return err
		}

		item := findItem(&draft, c.Item)
		if item == nil {
			// Unplanned work still counts; record it as an unmatched item.
			draft.Items = append(draft.Items, models.CheckinItem{Label: c.Item})
			item = &draft.Items[len(draft.Items)-1]
		}
		item.Done = true
		if c.Minutes > 0 {
			item.MinutesSpent = c.Minutes
		} else if item.MinutesSpent == 0 {
			item.MinutesSpent = utils.ParseDurationFromLabel(item.Label)
		}
		if c.Comment != "" {
			item.Comment = c.Comment
		}

		if err := saveDraft(ctx, draft); err != nil {
			return err
		}
		fmt.Printf("Done: %s (%d/%d complete)\n", item.Label, draft.DoneCount(), len(draft.Items))
		return nil
	})
}

type NoteCmd struct {
	Item string `arg:"" help:"Checklist item (task ID or title)."`
	Note string `arg:"" help:"Note to attach."`
}

func (c *NoteCmd) Run(ctx *cli.Context) error {
	today := ctx.Today()
	return ctx.WithExclusiveLock(func() error {
		draft, err := loadOrSeedDraft(ctx, today)
		if err != nil {
			return err
		}

		item := findItem(&draft, c.Item)
		if item == nil {
			draft.Items = append(draft.Items, models.CheckinItem{Label: c.Item})
			item = &draft.Items[len(draft.Items)-1]
		}
		item.Comment = c.Note

		if err := saveDraft(ctx, draft); err != nil {
			return err
		}
		fmt.Printf("Noted on %s\n", item.Label)
		return nil
	})
}

type ReflectCmd struct {
	Text   string `arg:"" help:"Reflection text."`
	Append bool   `short:"a" help:"Append to the existing reflection instead of replacing it."`
}

func (c *ReflectCmd) Run(ctx *cli.Context) error {
	today := ctx.Today()
	return ctx.WithExclusiveLock(func() error {
		draft, err := loadOrSeedDraft(ctx, today)
		if err != nil {
			return err
		}

		if c.Append && draft.Reflection != "" {
			draft.Reflection = draft.Reflection + "\n\n" + c.Text
		} else {
			draft.Reflection = c.Text
		}

		if err := saveDraft(ctx, draft); err != nil {
			return err
		}
		fmt.Println("Reflection saved")
		return nil
	})
}

type ModeCmd struct {
	Mode string `arg:"" help:"Check-in mode (commit|recovery)."`
}

func (c *ModeCmd) Run(ctx *cli.Context) error {
	mode := models.CheckinMode(strings.ToLower(c.Mode))
	if mode != models.ModeCommit && mode != models.ModeRecovery {
		return fmt.Errorf("invalid check-in mode: %s", c.Mode)
	}

	today := ctx.Today()
	return ctx.WithExclusiveLock(func() error {
		draft, err := loadOrSeedDraft(ctx, today)
		if err != nil {
			return err
		}
		draft.Mode = mode
		if err := saveDraft(ctx, draft); err != nil {
			return err
		}
		fmt.Printf("Check-in mode set to %s\n", mode)
		return nil
	})
}

type ShowCmd struct{}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	today := ctx.Today()
	draft, err := loadOrSeedDraft(ctx, today)
	if err != nil {
		return err
	}

	fmt.Printf("Check-in for %s (mode: %s)\n", draft.Day, draft.Mode)
	if len(draft.Items) == 0 {
		fmt.Println("  (no items yet; generate a plan or mark something done)")
	}
	for _, item := range draft.Items {
		mark := " "
		if item.Done {
			mark = "x"
		}
		line := fmt.Sprintf("  [%s] %s", mark, item.Label)
		if item.MinutesSpent > 0 {
			line += fmt.Sprintf(" (%s)", utils.FormatDuration(item.MinutesSpent))
		}
		fmt.Println(line)
		if item.Comment != "" {
			fmt.Printf("      note: %s\n", item.Comment)
		}
	}
	if strings.TrimSpace(draft.Reflection) != "" {
		fmt.Printf("\nReflection:\n%s\n", draft.Reflection)
	}
	return nil
}
