// Package invoke runs the subject executable and reports its exit status.
package invoke

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
)

// Mode selects what happens to the child's standard streams.
type Mode int

const (
	// Observed lets the child inherit the harness's streams so its
	// diagnostics are visible to the operator.
	Observed Mode = iota

	// Silent discards the child's streams.
	Silent
)

func (m Mode) String() string {
	switch m {
	case Observed:
		return "observed"
	case Silent:
		return "silent"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// StartError reports a subject that could not be started at all.
type StartError struct {
	Path string
	Err  error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Path, e.Err)
}

func (e *StartError) Unwrap() error {
	return e.Err
}

// Process invokes one executable with varying argument vectors.
// It blocks until the child exits; there is no timeout.
type Process struct {
	Path string

	// Stdin, Stdout and Stderr are used in Observed mode. Nil values fall
	// back to the harness's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Logger *slog.Logger
}

// New returns a Process for the executable at path using the harness's
// standard streams.
func New(path string) *Process {
	return &Process{Path: path}
}

// Invoke runs the subject with args and returns its exit status.
//
// A non-zero exit is a status, not an error. A child killed by a signal
// reports -1. The error is non-nil only when the child could not be started,
// in which case the status is -1 as well.
func (p *Process) Invoke(ctx context.Context, args []string, mode Mode) (int, error) {
	cmd := exec.CommandContext(ctx, p.Path, args...)

	switch mode {
	case Observed:
		cmd.Stdin = orReader(p.Stdin, os.Stdin)
		cmd.Stdout = orWriter(p.Stdout, os.Stdout)
		cmd.Stderr = orWriter(p.Stderr, os.Stderr)
	case Silent:
		// exec connects nil streams to the null device.
	default:
		return -1, fmt.Errorf("unknown io mode %v", mode)
	}

	p.logger().Debug("invoking subject", "path", p.Path, "args", args, "mode", mode.String())

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		status := exitErr.ExitCode()
		p.logger().Debug("subject exited", "status", status)
		return status, nil
	}
	return -1, &StartError{Path: p.Path, Err: err}
}

func (p *Process) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return p.Logger
}

func orReader(r, fallback io.Reader) io.Reader {
	if r == nil {
		return fallback
	}
	return r
}

func orWriter(w, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}
	return w
}
