package manim_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"sceneforge/internal/services/manim"
)

type stubRunner struct {
	binary string
	args   []string
	output []byte
	err    error
}

func (s *stubRunner) CombinedOutput(_ context.Context, binary string, args ...string) ([]byte, error) {
	s.binary = binary
	s.args = args
	return s.output, s.err
}

func TestRenderBuildsExpectedArgs(t *testing.T) {
	runner := &stubRunner{output: []byte("done")}
	client, err := manim.New("manim", "ql", "GeneratedScene", manim.WithRunner(runner))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := client.Render(context.Background(), "/tmp/ws/scene.py", "/tmp/ws/media", "scene-1"); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if runner.binary != "manim" {
		t.Fatalf("unexpected binary %q", runner.binary)
	}
	want := []string{"render", "-ql", "-o", "scene-1", "--media_dir", "/tmp/ws/media", "/tmp/ws/scene.py", "GeneratedScene"}
	if len(runner.args) != len(want) {
		t.Fatalf("unexpected args %v", runner.args)
	}
	for i, arg := range want {
		if runner.args[i] != arg {
			t.Fatalf("arg %d: want %q, got %q", i, arg, runner.args[i])
		}
	}
}

func TestRenderNormalizesQualityFlag(t *testing.T) {
	runner := &stubRunner{}
	client, err := manim.New("manim", "-qh", "GeneratedScene", manim.WithRunner(runner))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := client.Render(context.Background(), "s.py", "media", "out"); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if runner.args[1] != "-qh" {
		t.Fatalf("expected -qh flag, got %q", runner.args[1])
	}
}

func TestRenderSurfacesEngineOutputOnFailure(t *testing.T) {
	runner := &stubRunner{output: []byte("Traceback: boom"), err: errors.New("exit status 1")}
	client, err := manim.New("manim", "ql", "GeneratedScene", manim.WithRunner(runner))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	output, err := client.Render(context.Background(), "s.py", "media", "out")
	if err == nil {
		t.Fatal("expected render error")
	}
	if !strings.Contains(err.Error(), "Traceback: boom") {
		t.Fatalf("expected engine output in error, got %v", err)
	}
	if string(output) != "Traceback: boom" {
		t.Fatalf("expected combined output returned, got %q", output)
	}
}

func TestNewRequiresBinaryAndEntryClass(t *testing.T) {
	if _, err := manim.New("", "ql", "GeneratedScene"); err == nil {
		t.Fatal("expected error for empty binary")
	}
	if _, err := manim.New("manim", "ql", ""); err == nil {
		t.Fatal("expected error for empty entry class")
	}
}
