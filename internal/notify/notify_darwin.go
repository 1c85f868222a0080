//go:build darwin

package notify

import (
	"context"
	"fmt"
	"strings"

	"go.klb.dev/marklip-launcher/internal/runner"
)

const osascript = "/usr/bin/osascript"

// systemDeliverer posts a Notification Center banner through osascript. A
// plain executable (no .app bundle, no signing) may use this path; the first
// call can trigger the system permission prompt, and banners are dropped by
// the OS until the user allows them.
func systemDeliverer(r runner.Runner) func(context.Context, Event) error {
	return func(ctx context.Context, ev Event) error {
		script := fmt.Sprintf("display notification %s with title %s sound name %q",
			appleScriptString(ev.Body), appleScriptString(ev.Title), "default")
		res, err := r.Run(ctx, osascript, "-e", script)
		if err != nil {
			return err
		}
		if !res.Success() {
			return fmt.Errorf("osascript exited %d: %s", res.ExitCode, res.StderrText())
		}
		return nil
	}
}

// appleScriptString quotes s as an AppleScript string literal.
func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
