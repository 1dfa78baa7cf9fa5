package render_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sceneforge/internal/render"
	"sceneforge/internal/testsupport"
)

type stubEngine struct {
	output   []byte
	err      error
	artifact string

	scriptPath string
	mediaDir   string
	outputName string
	sawScript  string
}

func (s *stubEngine) Render(_ context.Context, scriptPath, mediaDir, outputName string) ([]byte, error) {
	s.scriptPath = scriptPath
	s.mediaDir = mediaDir
	s.outputName = outputName
	if data, err := os.ReadFile(scriptPath); err == nil {
		s.sawScript = string(data)
	}
	if s.err != nil {
		return s.output, s.err
	}
	if s.artifact != "" {
		target := filepath.Join(mediaDir, "videos", "scene", "480p15", s.artifact)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(target, []byte("fake mp4"), 0o644); err != nil {
			return nil, err
		}
	}
	return s.output, nil
}

type stubFrames struct {
	err   error
	calls int
}

func (s *stubFrames) ExtractFrame(_ context.Context, _, _, outputPath string) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	return os.WriteFile(outputPath, []byte("png"), 0o644)
}

type stubProber struct{ duration float64 }

func (s stubProber) Duration(context.Context, string) float64 { return s.duration }

func newExecutor(t *testing.T, engine *stubEngine, frames *stubFrames, prober stubProber) (*render.Executor, string) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	if err := os.MkdirAll(cfg.Paths.OutputDir, 0o755); err != nil {
		t.Fatalf("mkdir outputs: %v", err)
	}
	return render.NewExecutor(cfg, engine, frames, prober, nil), cfg.Paths.OutputDir
}

func TestRenderProducesArtifactAndThumbnail(t *testing.T) {
	engine := &stubEngine{artifact: "scene-1.mp4"}
	frames := &stubFrames{}
	executor, outputDir := newExecutor(t, engine, frames, stubProber{duration: 9.25})

	result, err := executor.Render(context.Background(), "print-ish code", "scene-1")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if result.VideoURL != "/outputs/scene-1.mp4" {
		t.Fatalf("unexpected video URL %q", result.VideoURL)
	}
	if result.ThumbnailURL != "/outputs/scene-1_thumb.png" {
		t.Fatalf("unexpected thumbnail URL %q", result.ThumbnailURL)
	}
	if result.DurationSeconds != 9.25 {
		t.Fatalf("unexpected duration %v", result.DurationSeconds)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "scene-1.mp4")); err != nil {
		t.Fatalf("expected stored video: %v", err)
	}
	if engine.sawScript != "print-ish code" {
		t.Fatalf("expected code written to script, saw %q", engine.sawScript)
	}
	if engine.outputName != "scene-1" {
		t.Fatalf("unexpected output name %q", engine.outputName)
	}
}

func TestRenderEngineFailureCarriesOutput(t *testing.T) {
	engine := &stubEngine{output: []byte("Traceback (most recent call last)"), err: errors.New("exit status 1")}
	executor, _ := newExecutor(t, engine, &stubFrames{}, stubProber{})

	_, err := executor.Render(context.Background(), "code", "scene-2")
	var rerr *render.RenderError
	if !errors.As(err, &rerr) || rerr.Kind != render.EngineFailed {
		t.Fatalf("expected EngineFailed, got %v", err)
	}
	if !strings.Contains(rerr.Message, "Traceback") {
		t.Fatalf("expected engine output in message, got %q", rerr.Message)
	}
}

func TestRenderFailsWhenNoVideoProduced(t *testing.T) {
	engine := &stubEngine{} // succeeds but writes nothing
	executor, _ := newExecutor(t, engine, &stubFrames{}, stubProber{})

	_, err := executor.Render(context.Background(), "code", "scene-3")
	var rerr *render.RenderError
	if !errors.As(err, &rerr) || rerr.Kind != render.NoArtifact {
		t.Fatalf("expected NoArtifact, got %v", err)
	}
}

func TestRenderSwallowsThumbnailFailure(t *testing.T) {
	engine := &stubEngine{artifact: "scene-4.mp4"}
	frames := &stubFrames{err: errors.New("no encoder")}
	executor, _ := newExecutor(t, engine, frames, stubProber{duration: 5})

	result, err := executor.Render(context.Background(), "code", "scene-4")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if result.ThumbnailURL != "" {
		t.Fatalf("expected absent thumbnail, got %q", result.ThumbnailURL)
	}
	if frames.calls != 1 {
		t.Fatalf("expected one frame extraction attempt, got %d", frames.calls)
	}
}

func TestRenderCleansWorkspace(t *testing.T) {
	engine := &stubEngine{artifact: "scene-5.mp4"}
	executor, _ := newExecutor(t, engine, &stubFrames{}, stubProber{duration: 5})

	if _, err := executor.Render(context.Background(), "code", "scene-5"); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if engine.mediaDir == "" {
		t.Fatal("expected media dir recorded")
	}
	if _, err := os.Stat(engine.mediaDir); !os.IsNotExist(err) {
		t.Fatalf("expected workspace removed, stat err %v", err)
	}
}
