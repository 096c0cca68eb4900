package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/cronty/internal/tools"
)

// toolsCmd prints the tool definitions the server exposes to agents.
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the MCP tool definitions as JSON",
	Long: `Print the name, description and JSON Schema of every tool the server
registers. No configuration or backend connection is needed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := tools.NewRegistry()
		if err := tools.RegisterAll(registry, nil, nil); err != nil {
			return err
		}

		out, err := registry.ToJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}
