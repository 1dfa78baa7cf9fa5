// Package logging wires slog with the console and JSON handlers used by the
// daemon and CLI, plus small attribute helpers so components log with
// consistent keys (component, job_id, scene_id, project_id, phase).
package logging
