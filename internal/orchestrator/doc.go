// Package orchestrator drives render jobs through their state machine:
// pending, running with a phase label, then completed or failed. Each
// submitted job runs in its own goroutine; submission returns the pending
// job record immediately and clients poll the store for progress.
//
// Three job kinds exist: rendering a single scene, combining an already
// rendered project, and rendering every scene then combining. A scene
// failure during render-all aborts the whole job before any combine is
// attempted. Errors inside a running job are captured into the job and
// scene records, never returned to callers.
package orchestrator
