package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/marklip-launcher/internal/launcher"
)

func newRunCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "run <subcommand>",
		Short: "Run a marklip conversion (auto, to-html, to-md)",
		Long: `Resolves marklip on PATH and runs "marklip <subcommand> --notify".
marklip reads and writes the clipboard itself and reports the result as a
notification. The launcher only reports when marklip is missing or cannot
be started.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: subcommands(),
		PreRunE:   func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := launcher.LookupAction(args[0]); !ok {
				return fmt.Errorf("unknown conversion %q (want one of %v)", args[0], subcommands())
			}
			return runConversion(cmd.Context(), v, args[0])
		},
	}
	addCoreFlags(cmd)
	return cmd
}

// newActionCmds returns one shortcut command per conversion, e.g.
// "marklip-launcher to-html".
func newActionCmds() []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(launcher.Actions))
	for _, a := range launcher.Actions {
		v := viper.New()
		sub := a.Subcommand
		cmd := &cobra.Command{
			Use:     sub,
			Short:   a.Title,
			Args:    cobra.NoArgs,
			PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runConversion(cmd.Context(), v, sub)
			},
		}
		addCoreFlags(cmd)
		cmds = append(cmds, cmd)
	}
	return cmds
}

func runConversion(ctx context.Context, v *viper.Viper, sub string) error {
	return withComponents(ctx, v, func(ctx context.Context, c *components) error {
		return c.app.Convert(ctx, sub)
	})
}

func subcommands() []string {
	out := make([]string, len(launcher.Actions))
	for i, a := range launcher.Actions {
		out[i] = a.Subcommand
	}
	return out
}
