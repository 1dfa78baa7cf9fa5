package render

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"sceneforge/internal/config"
	"sceneforge/internal/fileutil"
	"sceneforge/internal/logging"
)

// Kind classifies render failures.
type Kind string

const (
	EngineFailed Kind = "engine_failed"
	NoArtifact   Kind = "no_artifact"
)

// RenderError describes a failed render invocation. Message carries the
// engine's combined output for EngineFailed.
type RenderError struct {
	Kind    Kind
	Message string
}

func (e *RenderError) Error() string {
	switch e.Kind {
	case EngineFailed:
		return fmt.Sprintf("manim render failed: %s", e.Message)
	case NoArtifact:
		return "no video file generated"
	default:
		return e.Message
	}
}

// Engine runs the rendering subprocess.
type Engine interface {
	Render(ctx context.Context, scriptPath, mediaDir, outputName string) ([]byte, error)
}

// FrameExtractor captures a thumbnail still from a rendered video.
type FrameExtractor interface {
	ExtractFrame(ctx context.Context, videoPath, timestamp, outputPath string) error
}

// DurationProber reads a video's duration, degrading to a fallback value.
type DurationProber interface {
	Duration(ctx context.Context, path string) float64
}

// Result is the outcome of a successful render.
type Result struct {
	VideoURL        string
	VideoPath       string
	ThumbnailURL    string
	DurationSeconds float64
}

// Executor turns validated scripts into persistent video artifacts. Each
// invocation works in a private temp directory that is removed on every
// exit path; only the final artifact and thumbnail land in the output store.
type Executor struct {
	outputDir string
	engine    Engine
	frames    FrameExtractor
	prober    DurationProber
	logger    *slog.Logger
}

// NewExecutor constructs an executor writing artifacts under the configured
// output directory.
func NewExecutor(cfg *config.Config, engine Engine, frames FrameExtractor, prober DurationProber, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Executor{
		outputDir: cfg.Paths.OutputDir,
		engine:    engine,
		frames:    frames,
		prober:    prober,
		logger:    logging.WithComponent(logger, "render"),
	}
}

// Render writes code to a scratch script, invokes the engine, and copies the
// resulting video into the output store as {sceneID}.mp4. Thumbnail capture
// is best-effort; duration probing falls back rather than failing.
func (e *Executor) Render(ctx context.Context, code, sceneID string) (*Result, error) {
	workspace, err := os.MkdirTemp("", "manim_"+sceneID+"_")
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(workspace); rmErr != nil {
			e.logger.Warn("workspace cleanup failed", logging.Error(rmErr))
		}
	}()

	scriptPath := filepath.Join(workspace, "scene.py")
	if err := os.WriteFile(scriptPath, []byte(code), 0o644); err != nil {
		return nil, fmt.Errorf("write script: %w", err)
	}
	mediaDir := filepath.Join(workspace, "media")

	output, err := e.engine.Render(ctx, scriptPath, mediaDir, sceneID)
	if err != nil {
		message := strings.TrimSpace(string(output))
		if message == "" {
			message = err.Error()
		}
		return nil, &RenderError{Kind: EngineFailed, Message: message}
	}

	artifact, err := findVideo(mediaDir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	videoName := sceneID + ".mp4"
	videoPath := filepath.Join(e.outputDir, videoName)
	if err := fileutil.CopyFileVerified(artifact, videoPath); err != nil {
		return nil, fmt.Errorf("store artifact: %w", err)
	}

	result := &Result{
		VideoURL:  "/outputs/" + videoName,
		VideoPath: videoPath,
	}

	thumbName := sceneID + "_thumb.png"
	thumbPath := filepath.Join(e.outputDir, thumbName)
	if err := e.frames.ExtractFrame(ctx, videoPath, "00:00:01", thumbPath); err != nil {
		e.logger.Warn("thumbnail capture failed",
			logging.String(logging.FieldSceneID, sceneID),
			logging.Error(err))
	} else if _, statErr := os.Stat(thumbPath); statErr == nil {
		result.ThumbnailURL = "/outputs/" + thumbName
	}

	result.DurationSeconds = e.prober.Duration(ctx, videoPath)

	e.logger.Info("scene rendered",
		logging.String(logging.FieldSceneID, sceneID),
		logging.Float64("duration_seconds", result.DurationSeconds))
	return result, nil
}

// findVideo walks the engine's media tree for the first mp4 artifact.
func findVideo(mediaDir string) (string, error) {
	var found string
	err := filepath.WalkDir(mediaDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".mp4") {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil && found == "" {
		return "", &RenderError{Kind: NoArtifact, Message: err.Error()}
	}
	if found == "" {
		return "", &RenderError{Kind: NoArtifact}
	}
	return found, nil
}
