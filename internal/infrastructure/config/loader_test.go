package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWritesEmbeddedDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Preferences.DefaultModel == "" {
		t.Fatal("default config must name a default model")
	}
	if len(cfg.Models) == 0 {
		t.Fatal("default config must define at least one model")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("config permissions: want 0600, got %o", perm)
	}
}

func TestLoadParsesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
preferences:
  default_model: local
models:
  - name: local
    endpoint: http://localhost:11434/v1/chat/completions
    model_id: codellama:7b
execution:
  timeout: 7
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Preferences.DefaultModel != "local" {
		t.Fatalf("default model: want local, got %q", cfg.Preferences.DefaultModel)
	}
	if cfg.Execution.TimeoutSeconds != 7 {
		t.Fatalf("timeout: want 7, got %d", cfg.Execution.TimeoutSeconds)
	}
}

func TestHydrateDefaultsFillsGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
models:
  - name: only-model
    endpoint: http://localhost:11434/v1/chat/completions
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Preferences.DefaultModel != "only-model" {
		t.Fatalf("default model not hydrated, got %q", cfg.Preferences.DefaultModel)
	}
	if cfg.Execution.TimeoutSeconds != 30 {
		t.Fatalf("timeout default: want 30, got %d", cfg.Execution.TimeoutSeconds)
	}
	if cfg.Execution.Shell != "auto" {
		t.Fatalf("shell default: want auto, got %q", cfg.Execution.Shell)
	}
	if cfg.Security.RulesFile == "" {
		t.Fatal("rules file default not hydrated")
	}
}
