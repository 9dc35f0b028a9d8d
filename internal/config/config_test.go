package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"furrow/internal/config"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatalf("expected exists=false for %s", resolved)
	}
	if cfg.Server.Bind != "127.0.0.1:7643" {
		t.Fatalf("unexpected default bind: %s", cfg.Server.Bind)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadParsesRoster(t *testing.T) {
	path := writeConfig(t, `
[server]
bind = "127.0.0.1:0"

[[annotators]]
id = "admin"
role = "Admin"
token = "secret"
active = true

[[annotators]]
id = "u1"
name = "Alice"
token = "alice-token"
active = true
`)
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if len(cfg.Annotators) != 2 {
		t.Fatalf("expected 2 annotators, got %d", len(cfg.Annotators))
	}
	if cfg.Annotators[0].Role != "admin" {
		t.Fatalf("expected role normalized to admin, got %q", cfg.Annotators[0].Role)
	}
	if cfg.Annotators[1].Role != "annotator" {
		t.Fatalf("expected empty role defaulted to annotator, got %q", cfg.Annotators[1].Role)
	}
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	path := writeConfig(t, `
[[annotators]]
id = "u1"
token = "a"

[[annotators]]
id = "u1"
token = "b"
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for duplicate annotator id")
	}
}

func TestLoadRejectsDuplicateTokens(t *testing.T) {
	path := writeConfig(t, `
[[annotators]]
id = "u1"
token = "same"

[[annotators]]
id = "u2"
token = "same"
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for duplicate token")
	}
}

func TestLoadRejectsUnknownRole(t *testing.T) {
	path := writeConfig(t, `
[[annotators]]
id = "u1"
role = "supervisor"
token = "a"
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestLoadRejectsBadLogFormat(t *testing.T) {
	path := writeConfig(t, `
[logging]
format = "xml"
`)
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unsupported log format")
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	expanded, err := config.ExpandPath("~/furrow-test")
	if err != nil {
		t.Fatalf("ExpandPath failed: %v", err)
	}
	if expanded != filepath.Join(home, "furrow-test") {
		t.Fatalf("unexpected expansion: %s", expanded)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected sample config contents")
	}
}
