package ffmpeg_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"sceneforge/internal/services/ffmpeg"
)

type stubRunner struct {
	calls  [][]string
	output []byte
	err    error
}

func (s *stubRunner) CombinedOutput(_ context.Context, binary string, args ...string) ([]byte, error) {
	call := append([]string{binary}, args...)
	s.calls = append(s.calls, call)
	return s.output, s.err
}

func TestConcatUsesStreamCopy(t *testing.T) {
	runner := &stubRunner{}
	client, err := ffmpeg.New("ffmpeg", ffmpeg.WithRunner(runner))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := client.Concat(context.Background(), "/tmp/files.txt", "/tmp/combined.mp4"); err != nil {
		t.Fatalf("Concat failed: %v", err)
	}

	joined := strings.Join(runner.calls[0], " ")
	for _, want := range []string{"-f concat", "-safe 0", "-i /tmp/files.txt", "-c copy", "/tmp/combined.mp4"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in args %q", want, joined)
		}
	}
}

func TestMuxAudioCopiesVideoAndEncodesAudio(t *testing.T) {
	runner := &stubRunner{}
	client, err := ffmpeg.New("ffmpeg", ffmpeg.WithRunner(runner))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := client.MuxAudio(context.Background(), "v.mp4", "a.mp3", "out.mp4"); err != nil {
		t.Fatalf("MuxAudio failed: %v", err)
	}

	joined := strings.Join(runner.calls[0], " ")
	for _, want := range []string{"-c:v copy", "-c:a aac", "-shortest"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in args %q", want, joined)
		}
	}
}

func TestExtractFrameCapturesSingleFrame(t *testing.T) {
	runner := &stubRunner{}
	client, err := ffmpeg.New("ffmpeg", ffmpeg.WithRunner(runner))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := client.ExtractFrame(context.Background(), "v.mp4", "00:00:01", "thumb.png"); err != nil {
		t.Fatalf("ExtractFrame failed: %v", err)
	}

	joined := strings.Join(runner.calls[0], " ")
	for _, want := range []string{"-ss 00:00:01", "-vframes 1", "thumb.png"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in args %q", want, joined)
		}
	}
}

func TestFailuresIncludeToolOutput(t *testing.T) {
	runner := &stubRunner{output: []byte("codec mismatch"), err: errors.New("exit status 1")}
	client, err := ffmpeg.New("ffmpeg", ffmpeg.WithRunner(runner))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := client.Concat(context.Background(), "f.txt", "o.mp4"); err == nil || !strings.Contains(err.Error(), "codec mismatch") {
		t.Fatalf("expected tool output in error, got %v", err)
	}
}
