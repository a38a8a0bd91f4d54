package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/dayweave/internal/cli"
	"github.com/julianstephens/dayweave/internal/cli/checkin"
	"github.com/julianstephens/dayweave/internal/cli/plans"
	"github.com/julianstephens/dayweave/internal/cli/system"
	"github.com/julianstephens/dayweave/internal/cli/tasks"
	"github.com/julianstephens/dayweave/internal/errors"
	"github.com/julianstephens/dayweave/internal/logger"
	"github.com/julianstephens/dayweave/internal/scheduler"
	"github.com/julianstephens/dayweave/internal/workspace"
)

var CLI struct {
	Version kong.VersionFlag
	Root    string `help:"Workspace directory (overrides DAYWEAVE_ROOT)."`
	Store   string `help:"Storage backend: empty for the file workspace, or a path ending in .db for SQLite."`
	Debug   bool   `help:"Enable debug logging."`
	NoHooks bool   `help:"Disable hook execution." name:"no-hooks"`

	Init     system.InitCmd   `cmd:"" help:"Initialize the dayweave workspace."`
	Plan     plans.PlanCmd    `cmd:"" help:"Generate the day plan."`
	Day      plans.DayCmd     `cmd:"" help:"Show the stored plan."`
	Finalize cli.FinalizeCmd  `cmd:"" help:"Finalize the day: rate, log, and credit progress."`
	Status   system.StatusCmd `cmd:"" help:"Show streak, plan, and check-in status."`
	Doctor   system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Task     struct {
		Add     tasks.TaskAddCmd     `cmd:"" help:"Add a new task."`
		List    tasks.TaskListCmd    `cmd:"" help:"List tasks."`
		Edit    tasks.TaskEditCmd    `cmd:"" help:"Edit an existing task."`
		Delete  tasks.TaskDeleteCmd  `cmd:"" help:"Delete a task."`
		Archive tasks.TaskArchiveCmd `cmd:"" help:"Archive completed tasks."`
	} `cmd:"" help:"Manage tasks."`
	Checkin struct {
		Done    checkin.DoneCmd    `cmd:"" help:"Mark a checklist item done."`
		Note    checkin.NoteCmd    `cmd:"" help:"Attach a note to a checklist item."`
		Reflect checkin.ReflectCmd `cmd:"" help:"Record the day's reflection."`
		Mode    checkin.ModeCmd    `cmd:"" help:"Set the check-in mode (commit|recovery)."`
		Show    checkin.ShowCmd    `cmd:"" help:"Show the current check-in draft." default:"1"`
	} `cmd:"" help:"Evening check-in."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("dayweave"),
		kong.Description("Constraint-based daily planner with an evening check-in loop"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v0.2.0"},
	)

	cfg, err := workspace.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if CLI.Root != "" {
		cfg.Root = CLI.Root
	}
	if CLI.Store != "" {
		cfg.Store = CLI.Store
	}
	cfg.Debug = cfg.Debug || CLI.Debug
	cfg.DisableHooks = cfg.DisableHooks || CLI.NoHooks

	if err := logger.Init(logger.Config{Debug: cfg.Debug, LogDir: cfg.LogDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize log file: %v\n", err)
	}

	store := workspace.OpenProvider(cfg)
	defer store.Close()

	appCtx := &cli.Context{
		Store:     store,
		Scheduler: scheduler.New(),
		Config:    cfg,
	}

	// Init creates the workspace itself; everything else needs it loaded.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil && ctx.Selected().Name != "doctor" {
			errors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}
