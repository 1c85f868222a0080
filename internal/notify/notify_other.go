//go:build !darwin && !linux

package notify

import (
	"context"

	"go.klb.dev/marklip-launcher/internal/runner"
)

// systemDeliverer has no native mechanism on this platform; events are only
// logged.
func systemDeliverer(_ runner.Runner) func(context.Context, Event) error {
	return nil
}
