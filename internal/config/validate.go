package config

import (
	"errors"
	"fmt"
)

var validQualities = map[string]struct{}{
	"ql": {},
	"qm": {},
	"qh": {},
	"qk": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateEngine(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.UploadDir == "" {
		return errors.New("paths.upload_dir must be set")
	}
	if c.Paths.OutputDir == c.Paths.UploadDir {
		return errors.New("paths.output_dir and paths.upload_dir must differ")
	}
	return nil
}

func (c *Config) validateEngine() error {
	if c.Engine.ManimBinary == "" {
		return errors.New("engine.manim_binary must be set")
	}
	if c.Engine.FFmpegBinary == "" {
		return errors.New("engine.ffmpeg_binary must be set")
	}
	if c.Engine.FFprobeBinary == "" {
		return errors.New("engine.ffprobe_binary must be set")
	}
	if c.Engine.EntryClass == "" {
		return errors.New("engine.entry_class must be set")
	}
	if _, ok := validQualities[c.Engine.Quality]; !ok {
		return fmt.Errorf("engine.quality must be one of ql, qm, qh, qk (got %q)", c.Engine.Quality)
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	budget := c.Workflow.RenderProgressBudget
	if budget < 1 || budget > 99 {
		return fmt.Errorf("workflow.render_progress_budget must be between 1 and 99 (got %d)", budget)
	}
	return nil
}
