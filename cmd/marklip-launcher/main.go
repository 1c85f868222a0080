// marklip-launcher: menu-bar companion for the marklip clipboard converter.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := newServeCmd()
	root.Use = "marklip-launcher"
	root.Short = "Clipboard conversion launcher for marklip"
	root.Long = `marklip-launcher runs marklip conversions (auto, to-html, to-md) on the
clipboard and can register itself as a login item so it starts with your
session.

Run without a sub-command to stay resident (this is what the login item
does). Conversions report their own result through marklip --notify; the
launcher only notifies when marklip cannot be found or started.

Config file search order (first found wins):
  $HOME/.config/marklip-launcher/marklip-launcher.toml
  path supplied via --config

All flags can be set via MARKLIP_LAUNCHER_<FLAG> env vars or config-file keys.`
	root.SilenceUsage = true

	root.AddCommand(
		newRegisterCmd(),
		newUnregisterCmd(),
		newStatusCmd(),
		newRunCmd(),
		newMenuCmd(),
		newVersionCmd(),
	)
	root.AddCommand(newActionCmds()...)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "marklip-launcher %s\n", Version)
		},
	}
}
