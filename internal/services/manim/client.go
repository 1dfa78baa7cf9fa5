package manim

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sceneforge/internal/services"
)

// Engine defines the behaviour the render executor needs from the engine.
type Engine interface {
	Render(ctx context.Context, scriptPath, mediaDir, outputName string) ([]byte, error)
}

// Option configures the client.
type Option func(*Client)

// WithRunner injects a custom command runner (primarily for tests).
func WithRunner(runner services.CommandRunner) Option {
	return func(c *Client) {
		if runner != nil {
			c.runner = runner
		}
	}
}

// Client wraps manim CLI invocations.
type Client struct {
	binary     string
	quality    string
	entryClass string
	runner     services.CommandRunner
}

// New constructs a manim client. quality is the bare flag name (ql, qm, qh,
// qk); entryClass is the scene class manim is asked to render.
func New(binary, quality, entryClass string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("manim binary required")
	}
	quality = strings.TrimPrefix(strings.TrimSpace(quality), "-")
	if quality == "" {
		quality = "ql"
	}
	entryClass = strings.TrimSpace(entryClass)
	if entryClass == "" {
		return nil, errors.New("manim entry class required")
	}
	client := &Client{
		binary:     binary,
		quality:    quality,
		entryClass: entryClass,
		runner:     services.ExecRunner{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Render executes the engine against a script, directing all media output
// under mediaDir and naming the artifact outputName. The combined engine
// output is returned for diagnostics even on success.
func (c *Client) Render(ctx context.Context, scriptPath, mediaDir, outputName string) ([]byte, error) {
	if scriptPath == "" {
		return nil, errors.New("script path required")
	}
	if mediaDir == "" {
		return nil, errors.New("media dir required")
	}
	if outputName == "" {
		return nil, errors.New("output name required")
	}

	args := []string{
		"render",
		"-" + c.quality,
		"-o", outputName,
		"--media_dir", mediaDir,
		scriptPath,
		c.entryClass,
	}
	output, err := c.runner.CombinedOutput(ctx, c.binary, args...)
	if err != nil {
		return output, fmt.Errorf("manim render: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return output, nil
}
