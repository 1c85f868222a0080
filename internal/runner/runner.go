// Package runner is the single place marklip-launcher spawns child processes.
//
// Every external program the launcher touches (which, launchctl, the marklip
// conversion tool, osascript / notify-send) goes through a Runner so tests can
// substitute canned outcomes without touching the real OS.
package runner

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
)

// Result is the outcome of a process that was launched and exited.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Success reports whether the process exited with status 0.
func (r Result) Success() bool { return r.ExitCode == 0 }

// StderrText returns the captured error stream with surrounding whitespace
// removed.
func (r Result) StderrText() string { return strings.TrimSpace(string(r.Stderr)) }

// Runner runs a program to completion.
//
// A non-nil error means the process could not be launched at all (binary
// missing, permission denied). A process that starts and exits non-zero is
// not an error: its status is reported in Result.ExitCode.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// Func adapts a plain function to the Runner interface.
type Func func(ctx context.Context, name string, args ...string) (Result, error)

// Run calls f.
func (f Func) Run(ctx context.Context, name string, args ...string) (Result, error) {
	return f(ctx, name, args...)
}

// Exec runs programs with os/exec. Stdin is left empty; stdout and stderr are
// captured in memory.
type Exec struct{}

// Run starts name with args and waits for it to exit.
func (Exec) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("exec", "cmd", name, "args", args)
	if err := cmd.Start(); err != nil {
		return Result{}, err
	}

	res := exited(name, cmd.Wait())
	res.Stdout, res.Stderr = stdout.Bytes(), stderr.Bytes()
	slog.Debug("exec done", "cmd", name, "exit", res.ExitCode)
	return res, nil
}

// exited turns the error from Wait into a Result. Once Start succeeded the
// process has been launched, so no Wait failure is reported as an error: a
// failure other than a non-zero exit is logged and recorded as exit code -1.
func exited(name string, err error) Result {
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return Result{}
	case errors.As(err, &exitErr):
		return Result{ExitCode: exitErr.ExitCode()}
	default:
		slog.Warn("exec wait failed", "cmd", name, "err", err)
		return Result{ExitCode: -1}
	}
}
