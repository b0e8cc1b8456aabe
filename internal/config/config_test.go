package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("IDEAFUL_DB_PATH", "")
	t.Setenv("IDEAFUL_DB_DRIVER", "")

	cfg, err := LoadFile(filepath.Join(dir, "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("driver = %q, want sqlite", cfg.Database.Driver)
	}
	if !cfg.ConfirmDelete {
		t.Error("confirm_delete should default to true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	t.Setenv("IDEAFUL_LOG_LEVEL", "")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	cfg.LogLevel = "DEBUG"
	cfg.ConfirmDelete = false
	cfg.Database.Path = filepath.Join(dir, "ideas.db")
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.LogLevel != "DEBUG" || reloaded.ConfirmDelete {
		t.Errorf("reloaded config mismatch: %+v", reloaded)
	}
	if reloaded.Database.Path != filepath.Join(dir, "ideas.db") {
		t.Errorf("db path = %q", reloaded.Database.Path)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("database:\n  driver: sqlite\n  path: /tmp/file.db\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("IDEAFUL_DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/ideaful")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Database.Driver != DriverPostgres || cfg.Database.URL != "postgres://localhost/ideaful" {
		t.Errorf("env override not applied: %+v", cfg.Database)
	}
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Database.Driver = "mysql"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown driver")
	}

	cfg.Database.Driver = DriverPostgres
	cfg.Database.URL = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for postgres without url")
	}
}
