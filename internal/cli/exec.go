package cli

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"syscall"

	"github.com/NikitaCOEUR/promptline/internal/session"
)

// shellExecutor runs lines with "sh -c" in a fixed directory
type shellExecutor struct {
	shell string
	dir   string
}

// Exec implements session.Executor. A non-zero exit is reported in the
// result, not as an error.
func (e *shellExecutor) Exec(ctx context.Context, command string) (session.ExecResult, error) {
	shell := e.shell
	if shell == "" {
		shell = "sh"
	}

	cmd := exec.CommandContext(ctx, shell, "-c", command)
	cmd.Dir = e.dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := session.ExecResult{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			res.Signal = ws.Signal().String()
		}
	default:
		return res, err
	}
	return res, nil
}
