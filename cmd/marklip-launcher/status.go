package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type statusReport struct {
	Registered bool   `json:"registered"`
	Label      string `json:"label"`
	Descriptor string `json:"descriptor"`
	Program    string `json:"program,omitempty"`
	Tool       string `json:"tool"`
	ToolPath   string `json:"tool_path,omitempty"`
}

func newStatusCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show login item and marklip status",
		Long: `Shows whether the launcher is registered as a login item (the descriptor
file exists), which program the descriptor starts, and where marklip
resolves on PATH.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withComponents(cmd.Context(), v, func(ctx context.Context, c *components) error {
				return printStatus(cmd.OutOrStdout(), collectStatus(ctx, c), v.GetBool("json"))
			})
		},
	}
	cmd.Flags().Bool("json", false, "output raw JSON")
	addCoreFlags(cmd)
	return cmd
}

func collectStatus(ctx context.Context, c *components) statusReport {
	r := statusReport{
		Registered: c.agent.IsRegistered(),
		Label:      c.agent.Label(),
		Descriptor: c.agent.Path(),
		Tool:       c.exec.Tool(),
	}
	if d, err := c.agent.Current(); err == nil {
		r.Program = d.Program()
	}
	if p, ok := c.exec.Locator().Locate(ctx); ok {
		r.ToolPath = p
	}
	return r
}

func printStatus(out io.Writer, r statusReport, jsonOut bool) error {
	if jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	registered := "no"
	if r.Registered {
		registered = "yes"
	}
	fmt.Fprintf(w, "Login item:\t%s\n", registered)
	fmt.Fprintf(w, "Label:\t%s\n", r.Label)
	fmt.Fprintf(w, "Descriptor:\t%s\n", r.Descriptor)
	if r.Program != "" {
		fmt.Fprintf(w, "Program:\t%s\n", r.Program)
	}
	toolPath := "not found on PATH"
	if r.ToolPath != "" {
		toolPath = r.ToolPath
	}
	fmt.Fprintf(w, "Tool:\t%s (%s)\n", r.Tool, toolPath)
	return w.Flush()
}
