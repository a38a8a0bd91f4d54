package cli

import (
	"time"

	"github.com/julianstephens/dayweave/internal/analytics"
	"github.com/julianstephens/dayweave/internal/constants"
	"github.com/julianstephens/dayweave/internal/hooks"
	"github.com/julianstephens/dayweave/internal/logger"
	"github.com/julianstephens/dayweave/internal/reflections"
	"github.com/julianstephens/dayweave/internal/scheduler"
	"github.com/julianstephens/dayweave/internal/storage"
	"github.com/julianstephens/dayweave/internal/utils"
	"github.com/julianstephens/dayweave/internal/workspace"
)

type Context struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler
	Config    workspace.Config
}

// Today returns today's date string in the profile's timezone, falling
// back to UTC when the profile or timezone is unusable.
func (c *Context) Today() string {
	tz := "UTC"
	if profile, err := c.Store.GetProfile(); err == nil {
		tz = profile.Timezone
	} else {
		logger.Warn("Could not read profile for timezone", "error", err)
	}
	today, err := utils.TodayInTimezone(tz)
	if err != nil {
		logger.Warn("Invalid profile timezone, using UTC", "timezone", tz, "error", err)
		return time.Now().UTC().Format(constants.DateFormat)
	}
	return today
}

// HookRunner builds the hook runner from the workspace hooks.yaml. A
// broken config disables hooks for the invocation rather than failing it.
func (c *Context) HookRunner() *hooks.Runner {
	cfg, err := hooks.LoadConfig(storage.HooksPath(c.Store.Root()))
	if err != nil {
		logger.Warn("Could not load hooks config, hooks disabled", "error", err)
		return &hooks.Runner{Disabled: true}
	}
	runner := hooks.NewRunner(cfg, c.Store.Root())
	runner.Disabled = c.Config.DisableHooks
	return runner
}

// ReflectionLog opens the rolling reflection log.
func (c *Context) ReflectionLog() *reflections.Log {
	return reflections.NewLog(storage.ReflectionsPath(c.Store.Root()))
}

// Suggestions loads the analytics suggestion source; a missing or broken
// analytics file degrades to zero boosts.
func (c *Context) Suggestions() *analytics.Suggestions {
	src, err := analytics.LoadSuggestions(storage.AnalyticsPath(c.Store.Root()))
	if err != nil {
		logger.Warn("Could not load analytics, continuing without suggestions", "error", err)
		return &analytics.Suggestions{}
	}
	return src
}

// WithExclusiveLock runs fn while holding the workspace write lock.
func (c *Context) WithExclusiveLock(fn func() error) error {
	lock, err := storage.AcquireExclusive(c.Store.Root())
	if err != nil {
		return err
	}
	defer lock.Release()
	return fn()
}
