// Package command runs external programs and captures their output.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Runner executes a named program and returns its standard output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// ExitError reports a command that could not be started or exited non-zero.
type ExitError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("command %q failed", e.Command)
	if e.ExitCode > 0 {
		msg += fmt.Sprintf(" (exit %d)", e.ExitCode)
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExecRunner runs commands with os/exec. At most max commands run at once;
// further calls wait for a free slot.
type ExecRunner struct {
	log  *zap.Logger
	slot *semaphore.Weighted
}

func NewExecRunner(log *zap.Logger, max int) *ExecRunner {
	if max < 1 {
		max = 1
	}
	return &ExecRunner{
		log:  log,
		slot: semaphore.NewWeighted(int64(max)),
	}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	if err := r.slot.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer r.slot.Release(1)

	line := strings.TrimSpace(name + " " + strings.Join(args, " "))
	r.log.Debug("running command", zap.String("command", line))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		exitErr := &ExitError{Command: line, Stderr: stderr.String(), Err: err}
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			exitErr.ExitCode = ee.ExitCode()
		}
		r.log.Debug("command failed", zap.String("command", line), zap.Error(err))
		return stdout.String(), exitErr
	}

	return stdout.String(), nil
}
