package checks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// exitCodeNotRunnable is reported when a step's command cannot be started at
// all, matching the shell convention for "command not found".
const exitCodeNotRunnable = 127

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, stdout, stderr io.Writer) (int, error)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, stdout, stderr io.Writer) (int, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code <= 0 {
			code = 1
		}
		return code, nil
	}
	return exitCodeNotRunnable, fmt.Errorf("start %s: %w", binary, err)
}
