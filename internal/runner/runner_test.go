//go:build !windows

package runner

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExec_CapturesOutputAndExitCode(t *testing.T) {
	res, err := Exec{}.Run(context.Background(), "/bin/sh", "-c", "echo out; echo err >&2; exit 3")
	require.NoError(t, err, "a process that starts is never a launch error")
	assert.Equal(t, 3, res.ExitCode)
	assert.False(t, res.Success())
	assert.Equal(t, "out\n", string(res.Stdout))
	assert.Equal(t, "err", res.StderrText())
}

func TestExec_ZeroExit(t *testing.T) {
	res, err := Exec{}.Run(context.Background(), "/bin/sh", "-c", "true")
	require.NoError(t, err)
	assert.True(t, res.Success())
}

func TestExec_MissingBinaryIsLaunchError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	_, err := Exec{}.Run(context.Background(), missing)
	assert.Error(t, err)
}

func TestFunc_Adapter(t *testing.T) {
	var gotName string
	var gotArgs []string
	f := Func(func(_ context.Context, name string, args ...string) (Result, error) {
		gotName, gotArgs = name, args
		return Result{ExitCode: 7}, nil
	})

	res, err := f.Run(context.Background(), "tool", "a", "b")
	require.NoError(t, err)
	assert.Equal(t, 7, res.ExitCode)
	assert.Equal(t, "tool", gotName)
	assert.Equal(t, []string{"a", "b"}, gotArgs)
}

func TestExited_WaitFailureIsNotLaunchError(t *testing.T) {
	assert.Equal(t, Result{}, exited("marklip", nil))
	assert.Equal(t, Result{ExitCode: -1}, exited("marklip", errors.New("copying stdout: broken pipe")))
}

func TestExec_CancelledAfterStartIsNotLaunchError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	res, err := Exec{}.Run(ctx, "/bin/sh", "-c", "sleep 5")

	require.NoError(t, err)
	assert.False(t, res.Success())
}
