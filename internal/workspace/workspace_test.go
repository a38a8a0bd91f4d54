package workspace

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/dayweave/internal/storage"
)

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DAYWEAVE_ROOT", "/tmp/dw-test")
	t.Setenv("DAYWEAVE_DEBUG", "true")
	t.Setenv("DAYWEAVE_STORE", "dayweave.db")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Root != "/tmp/dw-test" || !cfg.Debug || cfg.Store != "dayweave.db" {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.LogDir != filepath.Join("/tmp/dw-test", "logs") {
		t.Errorf("expected log dir under root, got %s", cfg.LogDir)
	}
}

func TestLoadConfig_DefaultsToHome(t *testing.T) {
	t.Setenv("DAYWEAVE_ROOT", "")
	t.Setenv("DAYWEAVE_STORE", "")
	t.Setenv("DAYWEAVE_DEBUG", "")
	t.Setenv("DAYWEAVE_LOG_DIR", "")
	t.Setenv("DAYWEAVE_NO_HOOKS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Root == "" || filepath.Base(cfg.Root) != "dayweave" {
		t.Errorf("expected ~/dayweave default, got %s", cfg.Root)
	}
}

func TestOpenProvider_SelectsBackendBySuffix(t *testing.T) {
	root := t.TempDir()

	if _, ok := OpenProvider(Config{Root: root}).(*storage.FileStore); !ok {
		t.Error("empty store must select the file backend")
	}
	if _, ok := OpenProvider(Config{Root: root, Store: "dayweave.db"}).(*storage.SQLiteStore); !ok {
		t.Error(".db store must select the SQLite backend")
	}

	sq := OpenProvider(Config{Root: root, Store: "dayweave.db"}).(*storage.SQLiteStore)
	if sq.Root() != root {
		t.Errorf("relative db path must resolve under the workspace root, got %s", sq.Root())
	}
}
