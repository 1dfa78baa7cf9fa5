// Package ffmpeg wraps the ffmpeg CLI operations the pipeline needs:
// stream-copy concatenation, audio muxing, and thumbnail frame capture.
package ffmpeg
