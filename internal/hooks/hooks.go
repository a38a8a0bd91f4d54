package hooks

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/dayweave/internal/constants"
	"github.com/julianstephens/dayweave/internal/logger"
)

// Hook points recognized in hooks.yaml. Unknown points are ignored.
const (
	PreFinalize      = "pre_finalize"
	PostFinalize     = "post_finalize"
	PrePlanGenerate  = "pre_plan_generate"
	PostPlanGenerate = "post_plan_generate"
	OnTaskComplete   = "on_task_complete"
)

var validPoints = map[string]bool{
	PreFinalize:      true,
	PostFinalize:     true,
	PrePlanGenerate:  true,
	PostPlanGenerate: true,
	OnTaskComplete:   true,
}

// Spec is one configured hook: either a bare command string or a mapping
// with an explicit timeout.
type Spec struct {
	Command string
	Timeout time.Duration
}

func (s *Spec) UnmarshalYAML(value *yaml.Node) error {
	var cmd string
	if err := value.Decode(&cmd); err == nil {
		s.Command = cmd
		s.Timeout = constants.DefaultHookTimeout
		return nil
	}
	var raw struct {
		Command string `yaml:"command"`
		Timeout int    `yaml:"timeout"` // seconds
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	s.Command = raw.Command
	s.Timeout = constants.DefaultHookTimeout
	if raw.Timeout > 0 {
		s.Timeout = time.Duration(raw.Timeout) * time.Second
	}
	return nil
}

// Config maps hook points to their configured hooks.
type Config map[string][]Spec

// LoadConfig reads hooks.yaml. A missing file means no hooks.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Outcome is the captured result of one hook execution.
type Outcome struct {
	Command  string `json:"command"`
	Point    string `json:"hook_point"`
	ExitCode int    `json:"exit_code"`
	Stdout   string `json:"stdout,omitempty"`
	Stderr   string `json:"stderr,omitempty"`
	Err      string `json:"error,omitempty"`
}

// Failed reports whether the hook exited abnormally.
func (o Outcome) Failed() bool {
	return o.ExitCode != 0 || o.Err != ""
}

// Executor runs a single hook command. The core pipeline depends on this
// narrow interface rather than on process spawning, so tests can
// substitute a fake.
type Executor interface {
	Run(ctx context.Context, command string, stdin []byte, dir string) (exitCode int, stdout, stderr string, err error)
}

// ShellExecutor runs commands through the shell, time-bounded by the
// caller's context.
type ShellExecutor struct{}

func (ShellExecutor) Run(ctx context.Context, command string, stdin []byte, dir string) (int, string, string, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = dir
	cmd.Stdin = bytes.NewReader(stdin)

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		exitCode = -1
		if ee, ok := err.(*exec.ExitError); ok {
			exitCode = ee.ExitCode()
		}
	}
	return exitCode, capOutput(outBuf.String()), capOutput(errBuf.String()), err
}

func capOutput(s string) string {
	if len(s) > constants.HookOutputCap {
		return s[:constants.HookOutputCap]
	}
	return s
}

// Runner dispatches configured hooks for a given point. Failures are
// logged and collected, never propagated as errors.
type Runner struct {
	Config   Config
	Exec     Executor
	Dir      string
	Disabled bool
}

func NewRunner(cfg Config, dir string) *Runner {
	return &Runner{Config: cfg, Exec: ShellExecutor{}, Dir: dir}
}

// Run executes every hook registered for the point, feeding the event
// context as JSON on stdin. Outcomes are returned for reporting; a failed
// hook never aborts the caller.
func (r *Runner) Run(point string, eventCtx map[string]any) []Outcome {
	if r == nil || r.Disabled || !validPoints[point] {
		return nil
	}
	specs := r.Config[point]
	if len(specs) == 0 {
		return nil
	}

	payload, err := json.Marshal(eventCtx)
	if err != nil {
		logger.Warn("Hook context serialization failed", "point", point, "error", err)
		return nil
	}

	var outcomes []Outcome
	for _, spec := range specs {
		if spec.Command == "" {
			continue
		}
		timeout := spec.Timeout
		if timeout <= 0 {
			timeout = constants.DefaultHookTimeout
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		exitCode, stdout, stderr, runErr := r.Exec.Run(ctx, spec.Command, payload, r.Dir)
		timedOut := ctx.Err() == context.DeadlineExceeded
		cancel()

		outcome := Outcome{
			Command:  spec.Command,
			Point:    point,
			ExitCode: exitCode,
			Stdout:   stdout,
			Stderr:   stderr,
		}
		if runErr != nil {
			outcome.Err = runErr.Error()
			if timedOut {
				outcome.Err = "hook timed out after " + timeout.String()
			}
		}
		if outcome.Failed() {
			logger.Warn("Hook failed", "point", point, "command", spec.Command, "exit", exitCode)
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}
