package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Alerts.Notify {
		t.Error("notify should default to true")
	}
	if cfg.Log.Level != "warn" || cfg.Log.Format != "console" {
		t.Errorf("log defaults = %+v", cfg.Log)
	}
	if Exists() {
		t.Error("Exists() = true before Save")
	}
}

func TestSaveThenLoad(t *testing.T) {
	t.Setenv(EnvConfigDir, filepath.Join(t.TempDir(), "nested"))

	cfg := DefaultConfig()
	cfg.General.DBPath = "/tmp/budget.db"
	cfg.Alerts.Notify = false
	cfg.Log.Format = "json"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[general]\nexport_dir = \"/exports\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.ExportDir != "/exports" {
		t.Errorf("ExportDir = %q", cfg.General.ExportDir)
	}
	if cfg.Appearance.Theme != "flexoki-dark" || !cfg.Alerts.Notify {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[general\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestEnvOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.DBPath = "from-file.db"
	cfg.General.ExportDir = "file-exports"

	t.Setenv(EnvDBPath, "")
	t.Setenv(EnvExportDir, "")
	t.Setenv(EnvLogLevel, "")
	if GetDBPath(cfg) != "from-file.db" || GetExportDir(cfg) != "file-exports" || GetLogLevel(cfg) != "warn" {
		t.Fatal("file values not used without env")
	}

	t.Setenv(EnvDBPath, "from-env.db")
	t.Setenv(EnvExportDir, "env-exports")
	t.Setenv(EnvLogLevel, "debug")
	if GetDBPath(cfg) != "from-env.db" || GetExportDir(cfg) != "env-exports" || GetLogLevel(cfg) != "debug" {
		t.Fatal("env did not override file")
	}
}
