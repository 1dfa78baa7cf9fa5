// Command sceneforge is the CLI entrypoint: it runs the daemon via the
// serve subcommand and offers operator utilities for configuration and
// for inspecting projects and render jobs.
package main
