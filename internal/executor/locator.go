package executor

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"go.klb.dev/marklip-launcher/internal/runner"
)

// Locator resolves a command name to a path with a which-style lookup and
// caches the answer, including a negative one, until Invalidate is called.
type Locator struct {
	r     runner.Runner
	tool  string
	which string

	mu        sync.Mutex
	attempted bool
	path      string
}

// NewLocator returns a Locator for tool using the lookup program which.
func NewLocator(r runner.Runner, tool, which string) *Locator {
	return &Locator{r: r, tool: tool, which: which}
}

// Locate returns the tool path and true, or "" and false when the lookup
// exits non-zero, cannot be launched, or prints nothing. Only the first
// call after construction or Invalidate runs the lookup.
func (l *Locator) Locate(ctx context.Context) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.attempted {
		l.path = l.lookup(ctx)
		l.attempted = true
	}
	return l.path, l.path != ""
}

// Cached returns the cached answer without running the lookup. attempted is
// false when nothing has been looked up yet.
func (l *Locator) Cached() (path string, attempted bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.path, l.attempted
}

// Invalidate forgets the cached answer. Safe to call at any time.
func (l *Locator) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.attempted = false
	l.path = ""
}

func (l *Locator) lookup(ctx context.Context) string {
	res, err := l.r.Run(ctx, l.which, l.tool)
	if err != nil {
		slog.Warn("tool lookup could not run", "which", l.which, "tool", l.tool, "err", err)
		return ""
	}
	if !res.Success() {
		slog.Info("tool not on PATH", "tool", l.tool, "exit", res.ExitCode)
		return ""
	}
	path := strings.TrimSpace(string(res.Stdout))
	if path != "" {
		slog.Info("tool resolved", "tool", l.tool, "path", path)
	}
	return path
}
