package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/marklip-launcher/internal/executor"
	"go.klb.dev/marklip-launcher/internal/launchagent"
	"go.klb.dev/marklip-launcher/internal/runner"
	"go.klb.dev/marklip-launcher/internal/runner/runnertest"
)

// execCLI runs the root command with a fake runner and an isolated HOME.
func execCLI(t *testing.T, fake *runnertest.Fake, args ...string) (string, error) {
	t.Helper()
	prev := newRunner
	newRunner = func() runner.Runner { return fake }
	t.Cleanup(func() { newRunner = prev })

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func isolate(t *testing.T) (agentsDir string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return filepath.Join(home, "Library", "LaunchAgents")
}

func TestVersion(t *testing.T) {
	isolate(t)
	out, err := execCLI(t, runnertest.New(), "version")
	require.NoError(t, err)
	assert.Equal(t, "marklip-launcher dev\n", out)
}

func TestRegisterStatusUnregister(t *testing.T) {
	dir := isolate(t)
	fake := runnertest.New().Exit(defaultWhich, 0, "/opt/homebrew/bin/marklip\n")
	common := []string{"--agents-dir", dir, "--notifier", "log", "--log-format", "json"}

	_, err := execCLI(t, fake, append([]string{"register"}, common...)...)
	require.NoError(t, err)
	descriptor := filepath.Join(dir, defaultLabel+launchagent.DescriptorExt)
	assert.FileExists(t, descriptor)

	out, err := execCLI(t, fake, append([]string{"status", "--json"}, common...)...)
	require.NoError(t, err)
	var st statusReport
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.True(t, st.Registered)
	assert.Equal(t, descriptor, st.Descriptor)
	assert.Equal(t, "/opt/homebrew/bin/marklip", st.ToolPath)
	assert.NotEmpty(t, st.Program)

	_, err = execCLI(t, fake, append([]string{"unregister"}, common...)...)
	require.NoError(t, err)
	assert.NoFileExists(t, descriptor)

	launchctl := fake.CallsTo(defaultLaunchctl)
	require.Len(t, launchctl, 2)
	assert.Equal(t, []string{"load", descriptor}, launchctl[0].Args)
	assert.Equal(t, []string{"unload", descriptor}, launchctl[1].Args)
}

func TestUnregister_NotRegisteredFails(t *testing.T) {
	dir := isolate(t)

	_, err := execCLI(t, runnertest.New(), "unregister", "--agents-dir", dir, "--notifier", "log")

	assert.ErrorIs(t, err, launchagent.ErrNotRegistered)
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_ToolMissing(t *testing.T) {
	dir := isolate(t)
	fake := runnertest.New().Exit(defaultWhich, 1, "")

	_, err := execCLI(t, fake, "run", "auto", "--agents-dir", dir, "--notifier", "log")

	assert.ErrorIs(t, err, executor.ErrToolNotFound)
	assert.Len(t, fake.Calls(), 1)
}

func TestRun_UnknownConversion(t *testing.T) {
	dir := isolate(t)
	fake := runnertest.New()

	_, err := execCLI(t, fake, "run", "to-pdf", "--agents-dir", dir, "--notifier", "log")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown conversion")
	assert.Empty(t, fake.Calls())
}

func TestActionShortcut(t *testing.T) {
	dir := isolate(t)
	fake := runnertest.New().Exit("/usr/local/bin/which", 0, "/usr/local/bin/md")

	_, err := execCLI(t, fake, "to-html", "--agents-dir", dir, "--notifier", "log",
		"--tool", "md", "--which", "/usr/local/bin/which")

	require.NoError(t, err)
	calls := fake.CallsTo("/usr/local/bin/md")
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"to-html", "--notify"}, calls[0].Args)
	assert.Equal(t, []string{"md"}, fake.CallsTo("/usr/local/bin/which")[0].Args)
}

func TestConfigFileAndEnv(t *testing.T) {
	dir := isolate(t)
	cfg := filepath.Join(t.TempDir(), "launcher.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("label = \"com.example.launcher\"\nnotifier = \"log\"\n"), 0o600))
	t.Setenv("MARKLIP_LAUNCHER_AGENTS_DIR", dir)

	_, err := execCLI(t, runnertest.New(), "register", "--config", cfg)

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "com.example.launcher.plist"))
}

func TestUnknownNotifier(t *testing.T) {
	dir := isolate(t)
	_, err := execCLI(t, runnertest.New(), "register", "--agents-dir", dir, "--notifier", "carrier-pigeon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown notifier")
}

func TestPrintStatus_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printStatus(&buf, statusReport{
		Label:      defaultLabel,
		Descriptor: "/x/dev.klb.marklip-launcher.plist",
		Tool:       "marklip",
	}, false))

	out := buf.String()
	assert.Contains(t, out, "Login item:")
	assert.Contains(t, out, "no")
	assert.Contains(t, out, "marklip (not found on PATH)")
	assert.NotContains(t, out, "Program:")
}
