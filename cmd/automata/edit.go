package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/aretw0/automata/pkg/codec"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/validation"
	"github.com/spf13/cobra"
)

// editOp turns command arguments into edits.
type editOp struct {
	usage string
	args  cobra.PositionalArgs
	build func(args []string) ([]domain.Edit, error)
}

// each applies op to every argument.
func each(op domain.EditOp, field func(*domain.Edit, string)) func([]string) ([]domain.Edit, error) {
	return func(args []string) ([]domain.Edit, error) {
		edits := make([]domain.Edit, len(args))
		for i, a := range args {
			edits[i].Op = op
			field(&edits[i], a)
		}
		return edits, nil
	}
}

func setState(e *domain.Edit, v string)  { e.State = v }
func setSymbol(e *domain.Edit, v string) { e.Symbol = v }

var editOps = map[string]editOp{
	"add-state":        {"<state>...", cobra.MinimumNArgs(1), each(domain.OpAddState, setState)},
	"remove-state":     {"<state>...", cobra.MinimumNArgs(1), each(domain.OpRemoveState, setState)},
	"add-symbol":       {"<symbol>...", cobra.MinimumNArgs(1), each(domain.OpAddSymbol, setSymbol)},
	"remove-symbol":    {"<symbol>...", cobra.MinimumNArgs(1), each(domain.OpRemoveSymbol, setSymbol)},
	"set-initial":      {"<state>", cobra.ExactArgs(1), each(domain.OpSetInitial, setState)},
	"add-accepting":    {"<state>...", cobra.MinimumNArgs(1), each(domain.OpAddAccepting, setState)},
	"remove-accepting": {"<state>...", cobra.MinimumNArgs(1), each(domain.OpRemoveAccepting, setState)},
	"clear-initial": {"", cobra.NoArgs, func([]string) ([]domain.Edit, error) {
		return []domain.Edit{{Op: domain.OpClearInitial}}, nil
	}},
	"add-transition": {"<from> <symbol> <to>", cobra.ExactArgs(3), func(args []string) ([]domain.Edit, error) {
		return []domain.Edit{{Op: domain.OpAddTransition, From: args[0], Symbol: args[1], To: args[2]}}, nil
	}},
	"remove-transition": {"<from> <symbol>", cobra.ExactArgs(2), func(args []string) ([]domain.Edit, error) {
		return []domain.Edit{{Op: domain.OpRemoveTransition, From: args[0], Symbol: args[1]}}, nil
	}},
	"apply": {"<script>", cobra.ExactArgs(1), func(args []string) ([]domain.Edit, error) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, err
		}
		return codec.UnmarshalEdits(data, codec.FormatFromPath(args[0]))
	}},
}

func editOpNames() []string {
	names := make([]string, 0, len(editOps))
	for name := range editOps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func editUsage() string {
	var sb strings.Builder
	sb.WriteString("Operations:\n")
	for _, name := range editOpNames() {
		fmt.Fprintf(&sb, "  %-18s %s\n", name, editOps[name].usage)
	}
	sb.WriteString("\nAn edit script (apply) is a JSON or YAML list of {op, state, symbol, from_state, to_state}.\nThe document is only written when every edit succeeds.")
	return sb.String()
}

var editCmd = &cobra.Command{
	Use:       "edit <file> <operation> [args...]",
	Short:     "Modify an automaton document in place",
	Long:      "Applies one operation, or an edit script, to a document and saves it.\n\n" + editUsage(),
	Args:      cobra.MinimumNArgs(2),
	ValidArgs: editOpNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, name, rest := args[0], args[1], args[2:]
		op, ok := editOps[name]
		if !ok {
			return fmt.Errorf("unknown operation %q (want one of: %s)", name, strings.Join(editOpNames(), ", "))
		}
		if err := op.args(cmd, rest); err != nil {
			return fmt.Errorf("%s %s: %w", name, op.usage, err)
		}
		edits, err := op.build(rest)
		if err != nil {
			return err
		}

		a, err := loadModel(path)
		if err != nil {
			return err
		}
		next, err := a.ApplyEdits(edits)
		if err != nil {
			return err
		}
		if err := codec.Save(next, path); err != nil {
			return err
		}

		status := "complete"
		if !validation.IsComplete(next) {
			status = "incomplete"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Applied %d edit(s) to %s (%s)\n", len(edits), path, status)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
