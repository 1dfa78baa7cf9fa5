package combine_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sceneforge/internal/combine"
	"sceneforge/internal/config"
	"sceneforge/internal/store"
	"sceneforge/internal/testsupport"
)

type stubTool struct {
	concatErr error
	muxErr    error

	manifests []string
	muxCalls  int
}

func (s *stubTool) Concat(_ context.Context, manifestPath, outputPath string) error {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return err
	}
	s.manifests = append(s.manifests, string(data))
	if s.concatErr != nil {
		return s.concatErr
	}
	return os.WriteFile(outputPath, []byte("combined"), 0o644)
}

func (s *stubTool) MuxAudio(_ context.Context, _, _, outputPath string) error {
	s.muxCalls++
	if s.muxErr != nil {
		return s.muxErr
	}
	return os.WriteFile(outputPath, []byte("combined+audio"), 0o644)
}

func completedScene(t *testing.T, cfg *config.Config, id string) *store.Scene {
	t.Helper()
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.OutputDir, id+".mp4"), []byte("video"))
	return &store.Scene{ID: id, VideoURL: "/outputs/" + id + ".mp4", Status: store.SceneCompleted}
}

func TestCombineConcatenatesInOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	tool := &stubTool{}
	combiner := combine.New(cfg, tool, nil)

	scenes := []*store.Scene{
		completedScene(t, cfg, "s1"),
		completedScene(t, cfg, "s2"),
	}

	result, err := combiner.Combine(context.Background(), scenes, "proj", "")
	if err != nil {
		t.Fatalf("Combine failed: %v", err)
	}
	if result.VideoURL != "/outputs/proj_final.mp4" {
		t.Fatalf("unexpected video URL %q", result.VideoURL)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, "proj_final.mp4")); err != nil {
		t.Fatalf("expected final artifact: %v", err)
	}

	manifest := tool.manifests[0]
	first := strings.Index(manifest, "s1.mp4")
	second := strings.Index(manifest, "s2.mp4")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("unexpected manifest order:\n%s", manifest)
	}
	if !strings.Contains(manifest, "file '") {
		t.Fatalf("expected quoted absolute paths in manifest:\n%s", manifest)
	}
}

func TestCombineRejectsEmptySceneList(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	combiner := combine.New(cfg, &stubTool{}, nil)

	_, err := combiner.Combine(context.Background(), nil, "proj", "")
	var cerr *combine.CombineError
	if !errors.As(err, &cerr) || cerr.Kind != combine.NoScenes {
		t.Fatalf("expected NoScenes, got %v", err)
	}
}

func TestCombineSkipsMissingArtifacts(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	tool := &stubTool{}
	combiner := combine.New(cfg, tool, nil)

	scenes := []*store.Scene{
		completedScene(t, cfg, "present"),
		{ID: "ghost", VideoURL: "/outputs/ghost.mp4", Status: store.SceneCompleted},
		{ID: "never-rendered"},
	}

	if _, err := combiner.Combine(context.Background(), scenes, "proj", ""); err != nil {
		t.Fatalf("Combine failed: %v", err)
	}
	manifest := tool.manifests[0]
	if strings.Contains(manifest, "ghost") {
		t.Fatalf("expected ghost scene dropped from manifest:\n%s", manifest)
	}
	if !strings.Contains(manifest, "present.mp4") {
		t.Fatalf("expected present scene in manifest:\n%s", manifest)
	}
}

func TestCombineFailsWhenManifestEmpty(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	combiner := combine.New(cfg, &stubTool{}, nil)

	scenes := []*store.Scene{{ID: "ghost", VideoURL: "/outputs/ghost.mp4"}}
	_, err := combiner.Combine(context.Background(), scenes, "proj", "")
	var cerr *combine.CombineError
	if !errors.As(err, &cerr) || cerr.Kind != combine.NoArtifacts {
		t.Fatalf("expected NoArtifacts, got %v", err)
	}
}

func TestCombineSurfacesConcatFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	tool := &stubTool{concatErr: errors.New("ffmpeg concat: exit status 1: bad stream")}
	combiner := combine.New(cfg, tool, nil)

	scenes := []*store.Scene{completedScene(t, cfg, "s1")}
	_, err := combiner.Combine(context.Background(), scenes, "proj", "")
	var cerr *combine.CombineError
	if !errors.As(err, &cerr) || cerr.Kind != combine.ConcatFailed {
		t.Fatalf("expected ConcatFailed, got %v", err)
	}
	if !strings.Contains(cerr.Message, "bad stream") {
		t.Fatalf("expected tool output in message, got %q", cerr.Message)
	}
}

func TestCombineMuxesExistingAudio(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	tool := &stubTool{}
	combiner := combine.New(cfg, tool, nil)

	testsupport.WriteFile(t, filepath.Join(cfg.Paths.UploadDir, "track.mp3"), []byte("audio"))
	scenes := []*store.Scene{completedScene(t, cfg, "s1")}

	if _, err := combiner.Combine(context.Background(), scenes, "proj", "/uploads/track.mp3"); err != nil {
		t.Fatalf("Combine failed: %v", err)
	}
	if tool.muxCalls != 1 {
		t.Fatalf("expected one mux call, got %d", tool.muxCalls)
	}
}

func TestCombineSilentlySkipsMissingAudio(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	tool := &stubTool{}
	combiner := combine.New(cfg, tool, nil)

	scenes := []*store.Scene{completedScene(t, cfg, "s1")}
	result, err := combiner.Combine(context.Background(), scenes, "proj", "/uploads/vanished.mp3")
	if err != nil {
		t.Fatalf("Combine failed: %v", err)
	}
	if tool.muxCalls != 0 {
		t.Fatalf("expected no mux call, got %d", tool.muxCalls)
	}
	if _, err := os.Stat(result.VideoPath); err != nil {
		t.Fatalf("expected video-only final artifact: %v", err)
	}
}
