package hooks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type fakeExec struct {
	commands []string
	stdins   [][]byte
	exitCode int
	err      error
}

func (f *fakeExec) Run(ctx context.Context, command string, stdin []byte, dir string) (int, string, string, error) {
	f.commands = append(f.commands, command)
	f.stdins = append(f.stdins, stdin)
	return f.exitCode, "", "", f.err
}

func TestRun_FeedsEventContextAsJSON(t *testing.T) {
	exec := &fakeExec{}
	r := &Runner{
		Config: Config{PostFinalize: {{Command: "notify.sh", Timeout: time.Second}}},
		Exec:   exec,
	}

	outcomes := r.Run(PostFinalize, map[string]any{"day": "2026-08-26", "rating": "good"})

	if len(outcomes) != 1 || outcomes[0].Failed() {
		t.Fatalf("expected one successful outcome, got %v", outcomes)
	}
	if len(exec.commands) != 1 || exec.commands[0] != "notify.sh" {
		t.Fatalf("expected notify.sh executed, got %v", exec.commands)
	}

	var payload map[string]any
	if err := json.Unmarshal(exec.stdins[0], &payload); err != nil {
		t.Fatalf("stdin must be JSON: %v", err)
	}
	if payload["day"] != "2026-08-26" || payload["rating"] != "good" {
		t.Errorf("unexpected payload: %v", payload)
	}
}

func TestRun_FailureIsCapturedNotFatal(t *testing.T) {
	exec := &fakeExec{exitCode: 3, err: fmt.Errorf("exit status 3")}
	r := &Runner{
		Config: Config{PreFinalize: {{Command: "flaky.sh"}}},
		Exec:   exec,
	}

	outcomes := r.Run(PreFinalize, map[string]any{"day": "2026-08-26"})

	if len(outcomes) != 1 {
		t.Fatalf("expected one outcome, got %d", len(outcomes))
	}
	if !outcomes[0].Failed() || outcomes[0].ExitCode != 3 {
		t.Errorf("expected failed outcome with exit 3, got %+v", outcomes[0])
	}
}

func TestRun_UnknownPointIgnored(t *testing.T) {
	exec := &fakeExec{}
	r := &Runner{
		Config: Config{"made_up_point": {{Command: "never.sh"}}},
		Exec:   exec,
	}

	if got := r.Run("made_up_point", nil); got != nil {
		t.Errorf("unknown points must run nothing, got %v", got)
	}
	if len(exec.commands) != 0 {
		t.Errorf("expected no executions, got %v", exec.commands)
	}
}

func TestRun_DisabledRunnerRunsNothing(t *testing.T) {
	exec := &fakeExec{}
	r := &Runner{
		Config:   Config{PostFinalize: {{Command: "notify.sh"}}},
		Exec:     exec,
		Disabled: true,
	}

	if got := r.Run(PostFinalize, nil); got != nil {
		t.Errorf("disabled runner must return nil, got %v", got)
	}
}

func TestRun_NilRunnerIsSafe(t *testing.T) {
	var r *Runner
	if got := r.Run(PostFinalize, nil); got != nil {
		t.Errorf("nil runner must be a no-op, got %v", got)
	}
}

func TestRun_MultipleHooksAllExecute(t *testing.T) {
	exec := &fakeExec{}
	r := &Runner{
		Config: Config{PostPlanGenerate: {
			{Command: "first.sh"},
			{Command: "second.sh"},
		}},
		Exec: exec,
	}

	outcomes := r.Run(PostPlanGenerate, map[string]any{"day": "2026-08-26"})
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
	if exec.commands[0] != "first.sh" || exec.commands[1] != "second.sh" {
		t.Errorf("expected in-order execution, got %v", exec.commands)
	}
}

func TestLoadConfig_MissingFileMeansNoHooks(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "hooks.yaml"))
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if len(cfg) != 0 {
		t.Errorf("expected empty config, got %v", cfg)
	}
}

func TestLoadConfig_StringAndMappingForms(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hooks.yaml")
	content := `post_finalize:
  - "sync-notes.sh"
  - command: "backup.sh --fast"
    timeout: 120
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	specs := cfg[PostFinalize]
	if len(specs) != 2 {
		t.Fatalf("expected 2 specs, got %d", len(specs))
	}
	if specs[0].Command != "sync-notes.sh" || specs[0].Timeout != 30*time.Second {
		t.Errorf("bare string form: got %+v", specs[0])
	}
	if specs[1].Command != "backup.sh --fast" || specs[1].Timeout != 120*time.Second {
		t.Errorf("mapping form: got %+v", specs[1])
	}
}

func TestShellExecutor_RunsCommand(t *testing.T) {
	exitCode, stdout, _, err := ShellExecutor{}.Run(context.Background(), "cat", []byte("hello"), t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exitCode != 0 || stdout != "hello" {
		t.Errorf("expected stdin echoed, got exit=%d stdout=%q", exitCode, stdout)
	}
}
