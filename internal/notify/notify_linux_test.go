//go:build linux

package notify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/marklip-launcher/internal/runner/runnertest"
)

func TestNotifier_DeliversThroughNotifySend(t *testing.T) {
	fake := runnertest.New()
	n := New("Marklip Launcher", fake)

	n.Success("Conversion started")
	n.Error("boom")
	n.Flush()

	calls := fake.CallsTo(notifySend)
	require.Len(t, calls, 2)
	assert.ElementsMatch(t, [][]string{
		{"--urgency=normal", "Marklip Launcher", "Conversion started"},
		{"--urgency=critical", "Marklip Launcher Error", "boom"},
	}, [][]string{calls[0].Args, calls[1].Args})
}

func TestNotifier_MissingNotifySendIsSilent(t *testing.T) {
	fake := runnertest.New().LaunchError(notifySend, errors.New("executable file not found in $PATH"))
	n := New("App", fake)

	assert.NotPanics(t, func() {
		n.Error("bad")
		n.Flush()
	})
}
