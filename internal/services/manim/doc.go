// Package manim wraps the manim community CLI for rendering generated
// scene scripts.
package manim
