package services

import (
	"context"
	"os/exec"
)

// CommandRunner abstracts subprocess execution for testability. Output is
// the combined stdout and stderr of the command; err is non-nil when the
// command fails to start or exits non-zero.
type CommandRunner interface {
	CombinedOutput(ctx context.Context, binary string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec. It is the production CommandRunner.
type ExecRunner struct{}

func (ExecRunner) CombinedOutput(ctx context.Context, binary string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	return cmd.CombinedOutput()
}
