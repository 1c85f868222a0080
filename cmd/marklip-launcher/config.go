package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/marklip-launcher/internal/executor"
	"go.klb.dev/marklip-launcher/internal/launchagent"
	"go.klb.dev/marklip-launcher/internal/launcher"
	"go.klb.dev/marklip-launcher/internal/logging"
	"go.klb.dev/marklip-launcher/internal/notify"
	"go.klb.dev/marklip-launcher/internal/runner"
)

const (
	defaultTool      = "marklip"
	defaultWhich     = "/usr/bin/which"
	defaultLabel     = "dev.klb.marklip-launcher"
	defaultLaunchctl = "/bin/launchctl"
)

// bindViper wires a command's flags into a viper instance with the standard
// config file search order and MARKLIP_LAUNCHER_* env var prefix.
//
// Precedence (lowest → highest): defaults → config file → MARKLIP_LAUNCHER_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	configFlag, _ := cmd.Flags().GetString("config")
	if configFlag != "" {
		v.SetConfigFile(configFlag)
	} else {
		v.SetConfigName("marklip-launcher")
		v.SetConfigType("toml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "marklip-launcher"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix("MARKLIP_LAUNCHER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// addLoggingFlags adds the standard logging flags to a command.
func addLoggingFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-background", false, "run interactively: tinter logs + debug level")
	cmd.Flags().String("log-format", "auto", "log format: auto|text|json")
	cmd.Flags().String("log-level", "", "log level: debug|info|warn|error (default: info, debug when interactive)")
	cmd.Flags().String("log-file", "", "write logs to this rotating file instead of stderr")
}

// addConfigFlag adds the --config flag to a command.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to config file (overrides auto-discovery)")
}

// addToolFlags adds the flags that locate marklip.
func addToolFlags(cmd *cobra.Command) {
	cmd.Flags().String("tool", defaultTool, "conversion tool command name, resolved on PATH")
	cmd.Flags().String("which", defaultWhich, "lookup program used to resolve the tool")
	cmd.Flags().String("notifier", "auto", "notification delivery: auto|system|log")
}

// addAgentFlags adds the flags that locate the launch agent descriptor.
func addAgentFlags(cmd *cobra.Command) {
	dir, err := launchagent.DefaultDir()
	if err != nil {
		dir = ""
	}
	cmd.Flags().String("label", defaultLabel, "launch agent label (descriptor file name)")
	cmd.Flags().String("agents-dir", dir, "per-user launch agents directory")
	cmd.Flags().String("launchctl", defaultLaunchctl, "session manager utility")
}

// addCoreFlags adds everything newComponents reads.
func addCoreFlags(cmd *cobra.Command) {
	addToolFlags(cmd)
	addAgentFlags(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)
}

// setupLogging reads logging flags from viper and configures slog.
func setupLogging(v *viper.Viper) io.Closer {
	interactive := v.GetBool("no-background") || logging.IsTTY(os.Stderr)
	level := logging.ParseLevel(v.GetString("log-level"))
	if v.GetString("log-level") == "" {
		if interactive {
			level = logging.ParseLevel("debug")
		} else {
			level = logging.ParseLevel("info")
		}
	}
	return logging.Setup(logging.Options{
		Format: logging.ParseFormat(v.GetString("log-format")),
		Level:  level,
		File:   v.GetString("log-file"),
	})
}

// defaultLogFile is where the resident launcher logs when launchd starts it.
func defaultLogFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "Library", "Logs", "marklip-launcher", "launcher.log")
}

// components is everything a command may need, built from viper settings.
type components struct {
	app      *launcher.App
	exec     *executor.Executor
	agent    *launchagent.Manager
	notifier *notify.Notifier
}

// flush waits for pending notifications before the process exits.
func (c *components) flush() { c.notifier.Flush() }

func newComponents(v *viper.Viper, r runner.Runner) (*components, error) {
	c := &components{}

	switch n := v.GetString("notifier"); n {
	case "", "auto", "system":
		c.notifier = notify.New(launcher.AppName, r)
	case "log":
		c.notifier = notify.NewLog(launcher.AppName)
	default:
		return nil, fmt.Errorf("unknown notifier %q (want auto|system|log)", n)
	}

	c.exec = executor.New(r, executor.Config{
		Tool:  v.GetString("tool"),
		Which: v.GetString("which"),
	})

	dir := v.GetString("agents-dir")
	if dir == "" {
		return nil, fmt.Errorf("agents-dir is not set and the home directory is unknown")
	}
	c.agent = launchagent.New(r, launchagent.Config{
		Label:     v.GetString("label"),
		Dir:       dir,
		Launchctl: v.GetString("launchctl"),
	})

	c.app = launcher.New(c.exec, c.agent, c.notifier, v.GetString("tool"))
	return c, nil
}

// newRunner is swapped out by tests.
var newRunner = func() runner.Runner { return runner.Exec{} }

// withComponents sets up logging, builds the components and runs fn. Pending
// notifications are delivered before it returns.
func withComponents(ctx context.Context, v *viper.Viper, fn func(context.Context, *components) error) error {
	closer := setupLogging(v)
	defer closer.Close()

	c, err := newComponents(v, newRunner())
	if err != nil {
		return err
	}
	defer c.flush()
	return fn(ctx, c)
}
