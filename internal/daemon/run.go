package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"sceneforge/internal/api"
	"sceneforge/internal/combine"
	"sceneforge/internal/config"
	"sceneforge/internal/deps"
	"sceneforge/internal/logging"
	"sceneforge/internal/media/ffprobe"
	"sceneforge/internal/orchestrator"
	"sceneforge/internal/render"
	"sceneforge/internal/services/ffmpeg"
	"sceneforge/internal/services/llm"
	"sceneforge/internal/services/manim"
	"sceneforge/internal/store"
)

// Options configures daemon process runtime behavior.
type Options struct {
	LogLevel string
}

// Run wires the full service stack and blocks until the process receives
// SIGINT or SIGTERM.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	level := opts.LogLevel
	if level == "" {
		level = cfg.Logging.Level
	}
	logPath := filepath.Join(cfg.Paths.LogDir, "sceneforge.log")
	logger, err := logging.New(logging.Options{
		Level:       level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{"stdout", logPath},
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	logDependencySnapshot(logger, cfg)

	pidPath := filepath.Join(cfg.Paths.LogDir, "sceneforge.pid")
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	st, err := store.Open(cfg)
	if err != nil {
		logger.Error("open store", logging.Error(err))
		return err
	}

	engine, err := manim.New(cfg.Engine.ManimBinary, cfg.Engine.Quality, cfg.Engine.EntryClass)
	if err != nil {
		st.Close()
		return fmt.Errorf("init render engine: %w", err)
	}
	ffmpegClient, err := ffmpeg.New(cfg.Engine.FFmpegBinary)
	if err != nil {
		st.Close()
		return fmt.Errorf("init ffmpeg: %w", err)
	}
	prober := ffprobe.New(cfg.Engine.FFprobeBinary)

	renderer := render.NewExecutor(cfg, engine, ffmpegClient, prober, logger)
	combiner := combine.New(cfg, ffmpegClient, logger)
	orch := orchestrator.New(cfg, st, renderer, combiner, logger)
	generator := llm.NewGenerator(llm.Config{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		Model:          cfg.LLM.Model,
		Referer:        cfg.LLM.Referer,
		Title:          cfg.LLM.Title,
		TimeoutSeconds: cfg.LLM.TimeoutSeconds,
	}, logger)
	if generator.DemoMode() {
		logger.Info("no LLM API key configured, generation serves demo templates")
	}

	server := api.New(cfg, st, orch, generator, logger)

	d, err := New(cfg, st, orch, server.Handler(), logger)
	if err != nil {
		st.Close()
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()

	if err := d.Start(signalCtx); err != nil {
		return err
	}

	<-signalCtx.Done()
	logger.Info("sceneforge daemon shutting down")
	return nil
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}

func logDependencySnapshot(logger *slog.Logger, cfg *config.Config) {
	if logger == nil || cfg == nil {
		return
	}
	attrs := []any{
		logging.Bool("llm_key_present", strings.TrimSpace(cfg.LLM.APIKey) != ""),
	}
	for _, status := range deps.CheckBinaries(deps.Toolchain(cfg)) {
		name := strings.ToLower(status.Name)
		attrs = append(attrs,
			logging.Bool(name+"_available", status.Available),
			logging.String(name+"_binary", status.Command),
		)
	}
	logger.Info("dependency snapshot", attrs...)
}
