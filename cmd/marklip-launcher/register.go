package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRegisterCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register as a login item",
		Long: `Writes a launch agent descriptor for this executable into the per-user
launch agents directory and loads it with launchctl, so the launcher starts
at login. Registering again is harmless. If launchctl refuses the
descriptor it is removed again.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withComponents(cmd.Context(), v, func(ctx context.Context, c *components) error {
				return c.app.Register(ctx)
			})
		},
	}
	addCoreFlags(cmd)
	return cmd
}

func newUnregisterCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "unregister",
		Short: "Remove the login item",
		Long: `Unloads the launch agent with launchctl and deletes its descriptor. Fails
without touching anything when the launcher is not registered. If launchctl
cannot unload the agent the descriptor is kept.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withComponents(cmd.Context(), v, func(ctx context.Context, c *components) error {
				return c.app.Unregister(ctx)
			})
		},
	}
	addCoreFlags(cmd)
	return cmd
}
