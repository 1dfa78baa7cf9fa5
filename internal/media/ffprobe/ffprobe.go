// Package ffprobe reads container metadata from rendered artifacts.
package ffprobe

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"sceneforge/internal/services"
)

// FallbackDuration is reported when ffprobe fails or returns something
// unparseable. Downstream consumers prefer a plausible duration over a
// failed render.
const FallbackDuration = 5.0

// Option configures the prober.
type Option func(*Prober)

// WithRunner injects a custom command runner (primarily for tests).
func WithRunner(runner services.CommandRunner) Option {
	return func(p *Prober) {
		if runner != nil {
			p.runner = runner
		}
	}
}

// Prober wraps ffprobe CLI interactions.
type Prober struct {
	binary string
	runner services.CommandRunner
}

// New constructs a prober for the given ffprobe binary.
func New(binary string, opts ...Option) *Prober {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	prober := &Prober{binary: binary, runner: services.ExecRunner{}}
	for _, opt := range opts {
		opt(prober)
	}
	return prober
}

// Duration returns the container duration of the file in seconds. Probe
// failures and non-numeric output degrade to FallbackDuration rather than
// erroring; rendering proceeds regardless.
func (p *Prober) Duration(ctx context.Context, path string) float64 {
	seconds, err := p.probeDuration(ctx, path)
	if err != nil {
		return FallbackDuration
	}
	return seconds
}

func (p *Prober) probeDuration(ctx context.Context, path string) (float64, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return 0, errors.New("empty path")
	}

	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}
	output, err := p.runner.CombinedOutput(ctx, p.binary, args...)
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
}
