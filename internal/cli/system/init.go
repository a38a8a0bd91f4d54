package system

import (
	"fmt"

	"github.com/julianstephens/dayweave/internal/cli"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized workspace at %s\n", ctx.Store.Root())
	fmt.Println("Next steps:")
	fmt.Println("  1. Edit planner/profile.yaml with your work blocks and fixed events")
	fmt.Println("  2. Add tasks: dayweave task add \"Thesis draft\" -t deadline_project -r 24 -d 2026-09-30")
	fmt.Println("  3. Generate a plan: dayweave plan")
	return nil
}
