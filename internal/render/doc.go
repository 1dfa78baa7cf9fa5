// Package render executes validated scene scripts through the manim engine
// and persists the resulting video artifacts, thumbnails, and durations.
package render
