package main

import (
	mcpAdapter "github.com/aretw0/automata/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server on stdio",
	Long:  `Exposes the automata of the configured store as MCP tools: list_automata, describe_automaton, validate_automaton, evaluate_string, enumerate_accepted and create_from_example.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, closeFn, err := newWorkbench(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		// Logs go to stderr; stdout carries JSON-RPC.
		app.logger.Info("Starting MCP server (stdio)", "store", app.cfg.Store.Driver)
		s := mcpAdapter.NewServer(wb,
			mcpAdapter.WithLogger(app.logger),
			mcpAdapter.WithMaxInputSize(app.cfg.Input.MaxSize),
		)
		return s.ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
