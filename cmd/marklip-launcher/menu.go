package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/marklip-launcher/internal/clip"
	"go.klb.dev/marklip-launcher/internal/launcher"
)

func newMenuCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Show which conversions apply to the current clipboard",
		Long: `Reads the clipboard and prints the conversion menu with each entry's
enabled state: Auto needs text or HTML, Convert to HTML needs text, Convert
to markdown needs HTML. With --watch the menu is printed again whenever the
clipboard changes.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runMenu(cmd, v) },
	}
	f := cmd.Flags()
	f.Bool("watch", false, "keep running and reprint on clipboard changes")
	f.Bool("json", false, "output raw JSON")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)
	return cmd
}

func runMenu(cmd *cobra.Command, v *viper.Viper) error {
	closer := setupLogging(v)
	defer closer.Close()

	backend := clip.New()
	defer backend.Close()
	slog.Debug("clipboard backend", "name", backend.Name())

	out := cmd.OutOrStdout()
	jsonOut := v.GetBool("json")
	show := func() error {
		snap, err := backend.Snapshot()
		if err != nil {
			return fmt.Errorf("read clipboard: %w", err)
		}
		return printMenu(out, launcher.Menu(clip.Enable(snap)), jsonOut)
	}

	if err := show(); err != nil {
		return err
	}
	if !v.GetBool("watch") {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-backend.Watch():
			if err := show(); err != nil {
				slog.Warn("menu refresh failed", "err", err)
			}
		}
	}
}

type menuItemJSON struct {
	Title      string `json:"title"`
	Key        string `json:"key"`
	Subcommand string `json:"subcommand"`
	Enabled    bool   `json:"enabled"`
}

func printMenu(out io.Writer, entries []launcher.MenuEntry, jsonOut bool) error {
	if jsonOut {
		items := make([]menuItemJSON, len(entries))
		for i, e := range entries {
			items[i] = menuItemJSON{Title: e.Title, Key: e.Key, Subcommand: e.Subcommand, Enabled: e.Enabled}
		}
		return json.NewEncoder(out).Encode(items)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "\tTITLE\tKEY\tSUBCOMMAND\n")
	for _, e := range entries {
		marker := " "
		if e.Enabled {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", marker, e.Title, e.Key, e.Subcommand)
	}
	return w.Flush()
}
