package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sceneforge/internal/config"
	"sceneforge/internal/store"
	"sceneforge/internal/testsupport"
)

// writeTestConfig writes a config file with all paths under a temp dir and
// returns its path.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	contents := fmt.Sprintf(`[paths]
output_dir = %q
upload_dir = %q
log_dir = %q
api_bind = "127.0.0.1:0"
`,
		filepath.Join(base, "outputs"),
		filepath.Join(base, "uploads"),
		filepath.Join(base, "logs"),
	)
	path := filepath.Join(base, "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	output, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(output, "Wrote sample configuration") {
		t.Fatalf("unexpected output %q", output)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config missing: %v", err)
	}

	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error without --overwrite")
	}
	if _, err := runCommand(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	path := writeTestConfig(t)

	output, err := runCommand(t, "config", "validate", "--path", path)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(output, "Configuration valid") {
		t.Fatalf("unexpected output %q", output)
	}
}

func TestJobsListEmpty(t *testing.T) {
	path := writeTestConfig(t)

	output, err := runCommand(t, "-c", path, "jobs", "list")
	if err != nil {
		t.Fatalf("jobs list: %v", err)
	}
	if !strings.Contains(output, "No jobs found") {
		t.Fatalf("unexpected output %q", output)
	}
}

func TestProjectsListShowsSeededProject(t *testing.T) {
	path := writeTestConfig(t)

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	project := testsupport.NewProject(t, st, "Orbit Mechanics")
	testsupport.NewScene(t, st, project.ID, "draw an ellipse")
	st.Close()

	output, err := runCommand(t, "-c", path, "projects", "list")
	if err != nil {
		t.Fatalf("projects list: %v", err)
	}
	if !strings.Contains(output, "Orbit Mechanics") {
		t.Fatalf("project name missing from output %q", output)
	}

	output, err = runCommand(t, "-c", path, "projects", "scenes", project.ID)
	if err != nil {
		t.Fatalf("projects scenes: %v", err)
	}
	if !strings.Contains(output, "draw an ellipse") {
		t.Fatalf("scene prompt missing from output %q", output)
	}
}
