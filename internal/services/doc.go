// Package services defines shared utilities consumed by the pipeline's
// external tool integrations.
//
// Key responsibilities:
//   - The CommandRunner abstraction that makes subprocess execution
//     testable for the manim and ffmpeg clients.
//   - Structured error markers plus the Wrap helper so failures carry
//     consistent context when they land in job and scene records.
//
// Use these helpers when wiring new tool clients so operational behaviour
// stays uniform across the pipeline.
package services
