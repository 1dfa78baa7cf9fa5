package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sceneforge/internal/services"
)

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

// Client wraps ffmpeg CLI interactions for concat, mux, and frame capture.
type Client struct {
	binary string
	runner services.CommandRunner
}

// New constructs an ffmpeg client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("ffmpeg binary required")
	}
	client := &Client{binary: binary, runner: services.ExecRunner{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Concat stream-copies the files listed in a concat manifest into a single
// container without re-encoding.
func (c *Client) Concat(ctx context.Context, manifestPath, outputPath string) error {
	args := []string{
		"-f", "concat",
		"-safe", "0",
		"-i", manifestPath,
		"-c", "copy",
		"-y",
		outputPath,
	}
	output, err := c.runner.CombinedOutput(ctx, c.binary, args...)
	if err != nil {
		return fmt.Errorf("ffmpeg concat: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// MuxAudio overlays an audio track onto a video, copying the video stream,
// re-encoding the audio to AAC, and trimming the output to the shorter of
// the two inputs.
func (c *Client) MuxAudio(ctx context.Context, videoPath, audioPath, outputPath string) error {
	args := []string{
		"-i", videoPath,
		"-i", audioPath,
		"-c:v", "copy",
		"-c:a", "aac",
		"-shortest",
		"-y",
		outputPath,
	}
	output, err := c.runner.CombinedOutput(ctx, c.binary, args...)
	if err != nil {
		return fmt.Errorf("ffmpeg mux: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// ExtractFrame captures a single still frame at the given timestamp
// (HH:MM:SS form) for use as a thumbnail.
func (c *Client) ExtractFrame(ctx context.Context, videoPath, timestamp, outputPath string) error {
	args := []string{
		"-i", videoPath,
		"-ss", timestamp,
		"-vframes", "1",
		"-y",
		outputPath,
	}
	output, err := c.runner.CombinedOutput(ctx, c.binary, args...)
	if err != nil {
		return fmt.Errorf("ffmpeg frame: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
