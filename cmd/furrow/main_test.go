package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCLIConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	dataset := filepath.Join(base, "plots")
	logs := filepath.Join(base, "logs")
	for _, plot := range []string{"F1", "F2"} {
		dir := filepath.Join(dataset, plot, "2024")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "2024_1_9.png"), []byte("img"), 0o644); err != nil {
			t.Fatalf("write image: %v", err)
		}
	}

	path := filepath.Join(base, "config.toml")
	contents := `
[paths]
dataset_dir = "` + dataset + `"
log_dir = "` + logs + `"

[server]
bind = "127.0.0.1:0"

[[annotators]]
id = "alice"
name = "Alice"
role = "annotator"
token = "alice-token"
active = true
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("furrow %s: %v\n%s", strings.Join(args, " "), err, buf.String())
	}
	return buf.String()
}

func TestAssignQueueProgressFlow(t *testing.T) {
	configPath := writeCLIConfig(t)

	out := runCommand(t, "--config", configPath, "assign", "alice", "2")
	if !strings.Contains(out, "Assigned 2 plots to alice") {
		t.Fatalf("unexpected assign output: %q", out)
	}

	out = runCommand(t, "--config", configPath, "queue", "alice")
	if !strings.Contains(out, "F1") || !strings.Contains(out, "F2") {
		t.Fatalf("unexpected queue output: %q", out)
	}

	out = runCommand(t, "--config", configPath, "progress", "alice")
	if !strings.Contains(out, "0/2 complete (0.0%)") {
		t.Fatalf("unexpected progress output: %q", out)
	}

	out = runCommand(t, "--config", configPath, "remove", "alice", "F2")
	if !strings.Contains(out, "Removed plot F2 from alice") {
		t.Fatalf("unexpected remove output: %q", out)
	}

	out = runCommand(t, "--config", configPath, "plots", "--unassigned")
	if !strings.Contains(out, "F2") || strings.Contains(out, "F1") {
		t.Fatalf("unexpected plots output: %q", out)
	}
}

func TestAssignPartialGrantMessage(t *testing.T) {
	configPath := writeCLIConfig(t)

	out := runCommand(t, "--config", configPath, "assign", "alice", "5")
	if !strings.Contains(out, "Assigned 2 of 5 requested plots") {
		t.Fatalf("unexpected partial grant output: %q", out)
	}
}

func TestClearRequiresConfirmation(t *testing.T) {
	configPath := writeCLIConfig(t)
	runCommand(t, "--config", configPath, "assign", "alice", "1")

	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"--config", configPath, "clear"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected clear to refuse without --yes")
	}

	out := runCommand(t, "--config", configPath, "clear", "--yes")
	if !strings.Contains(out, "Cleared 0 annotations") {
		t.Fatalf("unexpected clear output: %q", out)
	}
}

func TestConfigInit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")

	out := runCommand(t, "config", "init", "--path", target)
	if !strings.Contains(out, target) {
		t.Fatalf("unexpected init output: %q", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config missing: %v", err)
	}

	// Second init without --overwrite must refuse.
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error when config already exists")
	}
}

func TestExportCSV(t *testing.T) {
	configPath := writeCLIConfig(t)
	runCommand(t, "--config", configPath, "assign", "alice", "1")

	out := runCommand(t, "--config", configPath, "export", "--format", "csv")
	if !strings.HasPrefix(out, "plot_id,annotator_id") {
		t.Fatalf("unexpected export header: %q", out)
	}
}
