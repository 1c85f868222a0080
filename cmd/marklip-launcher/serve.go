package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/marklip-launcher/internal/clip"
	"go.klb.dev/marklip-launcher/internal/launcher"
	"go.klb.dev/marklip-launcher/internal/logging"
)

// newServeCmd builds the resident mode; it becomes the root command.
func newServeCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := bindViper(cmd, v); err != nil {
				return err
			}
			// launchd gives us no terminal; keep a log file unless told otherwise.
			if !v.IsSet("log-file") && !v.GetBool("no-background") && !logging.IsTTY(os.Stderr) {
				v.Set("log-file", defaultLogFile())
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withComponents(cmd.Context(), v, serve)
		},
	}
	addCoreFlags(cmd)
	return cmd
}

// serve stays up until SIGINT/SIGTERM. SIGHUP drops the cached marklip
// location so a freshly installed tool is picked up.
func serve(ctx context.Context, c *components) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	toolPath, found := c.exec.Locator().Locate(ctx)
	slog.Info("marklip-launcher starting",
		"version", Version,
		"registered", c.agent.IsRegistered(),
		"tool", c.exec.Tool(),
		"tool_path", toolPath,
		"tool_found", found,
	)

	backend := clip.New()
	defer backend.Close()
	logMenu(backend)

	for {
		select {
		case <-ctx.Done():
			slog.Info("marklip-launcher stopping")
			return nil
		case <-hup:
			c.exec.Locator().Invalidate()
			p, ok := c.exec.Locator().Locate(ctx)
			slog.Info("tool location refreshed", "tool_path", p, "tool_found", ok)
		case <-backend.Watch():
			logMenu(backend)
		}
	}
}

func logMenu(backend clip.Backend) {
	snap, err := backend.Snapshot()
	if err != nil {
		slog.Warn("read clipboard", "err", err)
		return
	}
	for _, e := range launcher.Menu(clip.Enable(snap)) {
		slog.Debug("menu entry", "title", e.Title, "enabled", e.Enabled)
	}
}
