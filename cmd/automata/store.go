package main

import (
	"fmt"

	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/codec"
	"github.com/aretw0/automata/pkg/validation"
	"github.com/spf13/cobra"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the named automata of the configured store",
	Long:  `List, inspect, add and remove automata kept in the store selected by store.driver (file, memory or redis).`,
}

var storeLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stored automata",
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, closeFn, err := newWorkbench(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		names, err := wb.List(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(names) == 0 {
			fmt.Fprintln(out, "No automata found.")
			return nil
		}
		for _, name := range names {
			a, err := wb.Get(cmd.Context(), name)
			if err != nil {
				fmt.Fprintf(out, "- %s (unreadable: %v)\n", name, err)
				continue
			}
			s := validation.Summarize(a)
			state := "complete"
			if !s.Complete {
				state = "incomplete"
			}
			fmt.Fprintf(out, "- %s: %d states, %d symbols, %s\n", name, s.States, s.Symbols, state)
		}
		return nil
	},
}

var storeInspectCmd = &cobra.Command{
	Use:   "inspect <name>",
	Short: "Print a stored automaton",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, closeFn, err := newWorkbench(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		a, err := wb.Get(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("error loading '%s': %w", args[0], err)
		}
		if doc, _ := cmd.Flags().GetBool("document"); doc {
			data, err := codec.Marshal(a, codec.JSON)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		return printMarkdown(cmd.OutOrStdout(), tui.SummaryMarkdown(args[0], a, validation.Diagnose(a)))
	},
}

var storePutCmd = &cobra.Command{
	Use:   "put <name> <file>",
	Short: "Store a document under a name, replacing any previous one",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadModel(args[1])
		if err != nil {
			return err
		}
		wb, closeFn, err := newWorkbench(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		if err := wb.Put(cmd.Context(), args[0], a); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored '%s'\n", args[0])
		return nil
	},
}

var storeRmCmd = &cobra.Command{
	Use:   "rm <name>...",
	Short: "Remove one or more automata",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, closeFn, err := newWorkbench(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		out := cmd.OutOrStdout()
		hasError := false
		for _, name := range args {
			if err := wb.Delete(cmd.Context(), name); err != nil {
				fmt.Fprintf(out, "Error removing '%s': %v\n", name, err)
				hasError = true
			} else {
				fmt.Fprintf(out, "Removed '%s'\n", name)
			}
		}
		if hasError {
			return errSilent
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.AddCommand(storeLsCmd, storeInspectCmd, storePutCmd, storeRmCmd)
	storeInspectCmd.Flags().Bool("document", false, "Print the JSON document instead of the description")
}
