// Package daemon runs the long-lived sceneforge process: it acquires a
// single-instance lock, serves the HTTP API, and shuts the job
// orchestrator down cleanly on SIGINT or SIGTERM.
package daemon
