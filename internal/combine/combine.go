package combine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"sceneforge/internal/config"
	"sceneforge/internal/fileutil"
	"sceneforge/internal/logging"
	"sceneforge/internal/store"
)

// Kind classifies combine failures.
type Kind string

const (
	NoScenes     Kind = "no_scenes"
	NoArtifacts  Kind = "no_artifacts"
	ConcatFailed Kind = "concat_failed"
)

// CombineError describes a failed combine invocation.
type CombineError struct {
	Kind    Kind
	Message string
}

func (e *CombineError) Error() string {
	switch e.Kind {
	case NoScenes:
		return "no scenes to combine"
	case NoArtifacts:
		return "no rendered video files found to combine"
	case ConcatFailed:
		return fmt.Sprintf("video concatenation failed: %s", e.Message)
	default:
		return e.Message
	}
}

// Concatenator joins and muxes media files.
type Concatenator interface {
	Concat(ctx context.Context, manifestPath, outputPath string) error
	MuxAudio(ctx context.Context, videoPath, audioPath, outputPath string) error
}

// Result is the outcome of a successful combine.
type Result struct {
	VideoURL  string
	VideoPath string
}

// Combiner stitches a project's rendered scenes into one final video,
// optionally muxing an uploaded audio track on top.
type Combiner struct {
	outputDir string
	uploadDir string
	tool      Concatenator
	logger    *slog.Logger
}

// New constructs a combiner reading artifacts from the output store and
// audio tracks from the upload store.
func New(cfg *config.Config, tool Concatenator, logger *slog.Logger) *Combiner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Combiner{
		outputDir: cfg.Paths.OutputDir,
		uploadDir: cfg.Paths.UploadDir,
		tool:      tool,
		logger:    logging.WithComponent(logger, "combine"),
	}
}

// Combine concatenates the scenes' videos in order and writes the final
// artifact as {projectID}_final.mp4 in the output store. Scenes without a
// resolvable video file are skipped silently; a missing audio file degrades
// to a video-only export.
func (c *Combiner) Combine(ctx context.Context, scenes []*store.Scene, projectID, audioURL string) (*Result, error) {
	if len(scenes) == 0 {
		return nil, &CombineError{Kind: NoScenes}
	}

	workspace, err := os.MkdirTemp("", "compile_"+projectID+"_")
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(workspace); rmErr != nil {
			c.logger.Warn("workspace cleanup failed", logging.Error(rmErr))
		}
	}()

	outputDirAbs, err := filepath.Abs(c.outputDir)
	if err != nil {
		return nil, fmt.Errorf("resolve output dir: %w", err)
	}

	manifest, count, err := c.writeManifest(workspace, scenes, outputDirAbs)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, &CombineError{Kind: NoArtifacts}
	}

	combined := filepath.Join(workspace, "combined.mp4")
	if err := c.tool.Concat(ctx, manifest, combined); err != nil {
		return nil, &CombineError{Kind: ConcatFailed, Message: err.Error()}
	}

	finalName := projectID + "_final.mp4"
	finalPath := filepath.Join(outputDirAbs, finalName)

	audioPath := c.resolveAudio(audioURL)
	if audioPath != "" {
		if err := c.tool.MuxAudio(ctx, combined, audioPath, finalPath); err != nil {
			return nil, &CombineError{Kind: ConcatFailed, Message: err.Error()}
		}
	} else {
		if err := fileutil.CopyFileVerified(combined, finalPath); err != nil {
			return nil, fmt.Errorf("store final artifact: %w", err)
		}
	}

	c.logger.Info("project combined",
		logging.String(logging.FieldProjectID, projectID),
		logging.Int("scene_count", count),
		logging.Bool("with_audio", audioPath != ""))

	return &Result{VideoURL: "/outputs/" + finalName, VideoPath: finalPath}, nil
}

// writeManifest builds the ffmpeg concat manifest, keeping only scenes
// whose recorded video resolves to a file on disk.
func (c *Combiner) writeManifest(workspace string, scenes []*store.Scene, outputDirAbs string) (string, int, error) {
	manifestPath := filepath.Join(workspace, "files.txt")
	f, err := os.Create(manifestPath)
	if err != nil {
		return "", 0, fmt.Errorf("create manifest: %w", err)
	}
	defer f.Close()

	count := 0
	for _, scene := range scenes {
		if scene == nil || scene.VideoURL == "" {
			continue
		}
		videoPath := filepath.Join(outputDirAbs, filepath.Base(scene.VideoURL))
		if _, statErr := os.Stat(videoPath); statErr != nil {
			c.logger.Warn("skipping scene without artifact",
				logging.String(logging.FieldSceneID, scene.ID))
			continue
		}
		if _, err := fmt.Fprintf(f, "file '%s'\n", videoPath); err != nil {
			return "", 0, fmt.Errorf("write manifest: %w", err)
		}
		count++
	}
	if err := f.Close(); err != nil {
		return "", 0, fmt.Errorf("close manifest: %w", err)
	}
	return manifestPath, count, nil
}

// resolveAudio maps an audio URL to a file in the upload store, returning
// empty when the URL is unset or the file is gone.
func (c *Combiner) resolveAudio(audioURL string) string {
	if audioURL == "" {
		return ""
	}
	uploadDirAbs, err := filepath.Abs(c.uploadDir)
	if err != nil {
		return ""
	}
	audioPath := filepath.Join(uploadDirAbs, filepath.Base(audioURL))
	if _, err := os.Stat(audioPath); err != nil {
		c.logger.Warn("audio track missing, exporting without audio",
			logging.String("audio_url", audioURL))
		return ""
	}
	return audioPath
}
