//go:build linux

package notify

import (
	"context"
	"fmt"

	"go.klb.dev/marklip-launcher/internal/runner"
)

const notifySend = "notify-send"

// systemDeliverer uses notify-send. When it is not installed the launch
// error is swallowed by the caller; the event has already been logged.
func systemDeliverer(r runner.Runner) func(context.Context, Event) error {
	return func(ctx context.Context, ev Event) error {
		urgency := "normal"
		if ev.Severity == SeverityError {
			urgency = "critical"
		}
		res, err := r.Run(ctx, notifySend, "--urgency="+urgency, ev.Title, ev.Body)
		if err != nil {
			return err
		}
		if !res.Success() {
			return fmt.Errorf("notify-send exited %d: %s", res.ExitCode, res.StderrText())
		}
		return nil
	}
}
