package system

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/dayweave/internal/cli"
	"github.com/julianstephens/dayweave/internal/storage"
	"github.com/julianstephens/dayweave/internal/utils"
	"github.com/julianstephens/dayweave/internal/validation"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	reachable := false

	// Check 1: workspace reachable
	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("FAIL workspace reachable: %v\n", err)
		hasError = true
	} else {
		fmt.Println("OK   workspace reachable")
		reachable = true
	}

	// Check 2: profile valid
	if reachable {
		if err := checkProfile(ctx); err != nil {
			fmt.Printf("FAIL profile: %v\n", err)
			hasError = true
		} else {
			fmt.Println("OK   profile")
		}
	} else {
		fmt.Println("SKIP profile (workspace not reachable)")
	}

	// Check 3: tasks valid
	if reachable {
		if err := checkTasks(ctx); err != nil {
			fmt.Printf("FAIL tasks: %v\n", err)
			hasError = true
		} else {
			fmt.Println("OK   tasks")
		}
	} else {
		fmt.Println("SKIP tasks (workspace not reachable)")
	}

	// Check 4: stale workspace lock
	if msg, err := checkLock(ctx); err != nil {
		fmt.Printf("WARN workspace lock: %v\n", err)
	} else {
		fmt.Printf("OK   workspace lock%s\n", msg)
	}

	// Check 5: clock and timezone
	if err := checkClock(ctx, reachable); err != nil {
		fmt.Printf("FAIL clock/timezone: %v\n", err)
		hasError = true
	} else {
		fmt.Println("OK   clock/timezone")
	}

	// Check 6: reflection log present (warning only)
	if _, err := os.Stat(storage.ReflectionsPath(ctx.Store.Root())); err != nil {
		fmt.Println("WARN reflection log missing (created on first finalize)")
	} else {
		fmt.Println("OK   reflection log")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All diagnostics passed")
	return nil
}

func checkProfile(ctx *cli.Context) error {
	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return err
	}
	if result := validation.New().ValidateProfile(profile); result.HasConflicts() {
		return fmt.Errorf("%d conflict(s): %s", len(result.Conflicts), result.Conflicts[0].Description)
	}
	return nil
}

func checkTasks(ctx *cli.Context) error {
	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return err
	}
	if result := validation.New().ValidateTasks(tasks); result.HasConflicts() {
		return fmt.Errorf("%d conflict(s): %s", len(result.Conflicts), result.Conflicts[0].Description)
	}
	return nil
}

// checkLock looks for a lock file whose recorded PID no longer maps to a
// live process, which usually means a crashed run.
func checkLock(ctx *cli.Context) (string, error) {
	pid, err := storage.ReadLockPID(ctx.Store.Root())
	if err != nil {
		return "", err
	}
	if pid == 0 {
		return "", nil
	}
	proc, err := ps.FindProcess(pid)
	if err != nil {
		return "", fmt.Errorf("could not inspect lock holder PID %d: %w", pid, err)
	}
	if proc == nil {
		return "", fmt.Errorf("lock file records PID %d, which is not running (stale lock from a crashed run; safe to ignore, flock is already released)", pid)
	}
	return fmt.Sprintf(" (held by %s, PID %d)", proc.Executable(), pid), nil
}

func checkClock(ctx *cli.Context, reachable bool) error {
	if time.Now().Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %s", time.Now().Format(time.RFC3339))
	}
	if !reachable {
		return nil
	}
	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return err
	}
	if _, err := utils.LoadLocation(profile.Timezone); err != nil {
		return fmt.Errorf("profile timezone %q is invalid: %w", profile.Timezone, err)
	}
	return nil
}
