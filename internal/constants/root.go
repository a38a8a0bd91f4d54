package constants

import "time"

const (
	// AppName is the application name used for logging and config paths.
	AppName = "dayweave"

	// HistoryLimit bounds PlannerState.History to the most recent days.
	HistoryLimit = 30

	// ReflectionMinChars is the reflection length that counts as meaningful
	// engagement for rating and streak purposes.
	ReflectionMinChars = 30

	// DefaultHookTimeout bounds a single hook command execution.
	DefaultHookTimeout = 30 * time.Second

	// DefaultLockTimeout bounds workspace lock acquisition.
	DefaultLockTimeout = 10 * time.Second

	// HookOutputCap limits captured hook stdout/stderr bytes.
	HookOutputCap = 4096
)
