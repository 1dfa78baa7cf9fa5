// Package deps reports the availability of the external tools the render
// pipeline shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"sceneforge/internal/config"
)

// Requirement defines an external dependency sceneforge relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Toolchain lists the external binaries the configured pipeline needs.
func Toolchain(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "Manim",
			Command:     cfg.Engine.ManimBinary,
			Description: "Renders scene code to video",
		},
		{
			Name:        "FFmpeg",
			Command:     cfg.Engine.FFmpegBinary,
			Description: "Concatenates scenes, muxes audio, extracts thumbnails",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.Engine.FFprobeBinary,
			Description: "Measures rendered clip durations",
			Optional:    true,
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
