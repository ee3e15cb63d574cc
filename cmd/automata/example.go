package main

import (
	"fmt"

	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/catalog"
	"github.com/aretw0/automata/pkg/codec"
	"github.com/aretw0/automata/pkg/validation"
	"github.com/spf13/cobra"
)

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Browse the built-in example automata",
}

var exampleLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the examples",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, ex := range catalog.All() {
			fmt.Fprintf(out, "%-18s %s\n", ex.Name, ex.Description)
		}
	},
}

var exampleShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Describe an example",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := catalog.Lookup(args[0])
		if err != nil {
			return err
		}
		a := ex.Build()
		md := tui.SummaryMarkdown(ex.Name, a, validation.Diagnose(a)) + "\n" + ex.Description + "\n"
		return printMarkdown(cmd.OutOrStdout(), md)
	},
}

var exampleSaveCmd = &cobra.Command{
	Use:   "save <name> [file]",
	Short: "Write an example to a document (default: <name>.json)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := catalog.Build(args[0])
		if err != nil {
			return err
		}
		path := args[0] + ".json"
		if len(args) == 2 {
			path = args[1]
		}
		if err := codec.Save(a, path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved example '%s' to %s\n", args[0], path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exampleCmd)
	exampleCmd.AddCommand(exampleLsCmd, exampleShowCmd, exampleSaveCmd)
}
