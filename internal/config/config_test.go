package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sceneforge/internal/config"
)

func TestDefaultsValidateAfterNormalize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing.toml")

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected missing config to report exists=false")
	}
	if resolved != path {
		t.Fatalf("expected resolved path %q, got %q", path, resolved)
	}
	if cfg.Engine.EntryClass != "GeneratedScene" {
		t.Fatalf("unexpected default entry class %q", cfg.Engine.EntryClass)
	}
	if cfg.Workflow.RenderProgressBudget != 80 {
		t.Fatalf("unexpected default render budget %d", cfg.Workflow.RenderProgressBudget)
	}
	if !filepath.IsAbs(cfg.Paths.OutputDir) {
		t.Fatalf("expected expanded output dir, got %q", cfg.Paths.OutputDir)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
output_dir = "` + filepath.Join(dir, "out") + `"
upload_dir = "` + filepath.Join(dir, "up") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"
api_bind = "127.0.0.1:9000"

[engine]
quality = "-qh"

[workflow]
render_progress_budget = 70
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be detected")
	}
	if cfg.Paths.APIBind != "127.0.0.1:9000" {
		t.Fatalf("unexpected api bind %q", cfg.Paths.APIBind)
	}
	if cfg.Engine.Quality != "qh" {
		t.Fatalf("expected leading dash stripped from quality, got %q", cfg.Engine.Quality)
	}
	if cfg.Workflow.RenderProgressBudget != 70 {
		t.Fatalf("unexpected render budget %d", cfg.Workflow.RenderProgressBudget)
	}
}

func TestValidateRejectsBadQuality(t *testing.T) {
	cfg := config.Default()
	cfg.Engine.Quality = "turbo"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "engine.quality") {
		t.Fatalf("expected quality validation error, got %v", err)
	}
}

func TestValidateRejectsSharedDirs(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.OutputDir = "/tmp/same"
	cfg.Paths.UploadDir = "/tmp/same"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when output and upload dirs collide")
	}
}

func TestValidateRejectsBadBudget(t *testing.T) {
	cfg := config.Default()
	cfg.Workflow.RenderProgressBudget = 100
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for out-of-range render budget")
	}
}

func TestCreateSampleWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[engine]") {
		t.Fatal("sample config missing engine section")
	}
}
