package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/dayweave/internal/logger"
)

// ValidationError reports malformed input (draft, task, profile) rejected
// before any mutation took place.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "validation failed: " + e.Problems[0]
	}
	return fmt.Sprintf("validation failed: %d problems (first: %s)", len(e.Problems), e.Problems[0])
}

// NewValidation builds a ValidationError from one or more problems.
func NewValidation(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}

// ConstraintError reports malformed interval data, such as a window whose
// end does not come after its start.
type ConstraintError struct {
	Detail string
}

func (e *ConstraintError) Error() string {
	return "invalid constraint: " + e.Detail
}

// LockTimeout reports that the workspace lock could not be acquired within
// the configured bound. Callers retry or report busy.
type LockTimeout struct {
	Path string
}

func (e *LockTimeout) Error() string {
	return fmt.Sprintf("workspace lock unavailable: %s", e.Path)
}

// HookFailure captures a failed hook command. It is surfaced as a warning
// and never blocks the pipeline.
type HookFailure struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *HookFailure) Error() string {
	return fmt.Sprintf("hook %q failed with exit code %d", e.Command, e.ExitCode)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsLockTimeout reports whether err is (or wraps) a LockTimeout.
func IsLockTimeout(err error) bool {
	var lt *LockTimeout
	return errors.As(err, &lt)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
