package tasks

import (
	"fmt"

	"github.com/julianstephens/dayweave/internal/cli"
)

type TaskDeleteCmd struct {
	ID string `arg:"" help:"Task ID to delete."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	return ctx.WithExclusiveLock(func() error {
		task, err := ctx.Store.GetTask(c.ID)
		if err != nil {
			return err
		}
		if err := ctx.Store.DeleteTask(c.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted task: %s\n", task.Title)
		return nil
	})
}

// TaskArchiveCmd moves completed tasks out of the active list.
type TaskArchiveCmd struct{}

func (c *TaskArchiveCmd) Run(ctx *cli.Context) error {
	return ctx.WithExclusiveLock(func() error {
		moved, err := ctx.Store.ArchiveCompleted()
		if err != nil {
			return err
		}
		if len(moved) == 0 {
			fmt.Println("No completed tasks to archive")
			return nil
		}
		for _, t := range moved {
			fmt.Printf("Archived: %s\n", t.Title)
		}
		return nil
	})
}
