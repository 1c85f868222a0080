// Package executor runs the external marklip conversion tool.
//
// Only transport-level failures are reported here: the tool could not be
// found, or it could not be launched. Once marklip starts it is responsible
// for telling the user how the conversion went (it is always invoked with
// --notify), so its exit status is logged and otherwise ignored.
package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.klb.dev/marklip-launcher/internal/runner"
)

var (
	// ErrToolNotFound means the lookup did not resolve the tool on PATH.
	ErrToolNotFound = errors.New("tool not found")
	// ErrProcessLaunchFailed means the resolved tool could not be started.
	ErrProcessLaunchFailed = errors.New("process launch failed")
)

// NotifyFlag asks the tool to report its own outcome to the user.
const NotifyFlag = "--notify"

// Config names the tool and the lookup program.
type Config struct {
	Tool  string // command name, e.g. "marklip"
	Which string // which-style lookup program, e.g. "/usr/bin/which"
}

// Executor invokes the tool by subcommand.
type Executor struct {
	loc *Locator
	r   runner.Runner
}

// New returns an Executor that resolves cfg.Tool with cfg.Which and runs
// everything through r.
func New(r runner.Runner, cfg Config) *Executor {
	return &Executor{loc: NewLocator(r, cfg.Tool, cfg.Which), r: r}
}

// Locator exposes the cached tool lookup (for status display and explicit
// invalidation).
func (e *Executor) Locator() *Locator { return e.loc }

// Tool returns the configured command name.
func (e *Executor) Tool() string { return e.loc.tool }

// Execute runs `<tool> <subcommand> --notify` and waits for it to exit.
//
// It returns an error wrapping ErrToolNotFound when the tool cannot be
// resolved (nothing is spawned) or ErrProcessLaunchFailed when the process
// could not be started. Any exit status of a started process yields nil.
func (e *Executor) Execute(ctx context.Context, subcommand string) error {
	path, ok := e.loc.Locate(ctx)
	if !ok {
		return fmt.Errorf("%w: %s", ErrToolNotFound, e.loc.tool)
	}

	res, err := e.r.Run(ctx, path, subcommand, NotifyFlag)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrProcessLaunchFailed, err)
	}

	if res.Success() {
		slog.Debug("tool finished", "tool", path, "subcommand", subcommand)
	} else {
		slog.Info("tool exited non-zero", "tool", path, "subcommand", subcommand,
			"exit", res.ExitCode, "stderr", res.StderrText())
	}
	return nil
}
