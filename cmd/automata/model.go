package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/internal/sanitize"
	"github.com/aretw0/automata/pkg/codec"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/enumerator"
	"github.com/aretw0/automata/pkg/evaluator"
	"github.com/aretw0/automata/pkg/validation"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check that documents define complete DFAs",
	Long:  `Reports every problem that keeps a document from being a complete DFA: missing states, alphabet or initial state, and every undefined transition.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		out := cmd.OutOrStdout()
		failed := false

		for _, path := range args {
			a, err := loadModel(path)
			if err != nil {
				fmt.Fprintf(out, "%s: %v\n", path, err)
				failed = true
				continue
			}
			report := validation.Diagnose(a, validation.WithMissingLimit(limit))
			if report.Complete() {
				fmt.Fprintf(out, "%s: complete DFA ✅\n", path)
				continue
			}
			failed = true
			fmt.Fprintf(out, "%s: not a complete DFA\n", path)
			for _, f := range report.Findings {
				fmt.Fprintf(out, "  - %s\n", f.Message())
			}
			if report.Omitted > 0 {
				fmt.Fprintf(out, "  ... and %d more missing transitions\n", report.Omitted)
			}
		}
		if failed {
			return errSilent
		}
		return nil
	},
}

var evalCmd = &cobra.Command{
	Use:   "eval <file> <input>...",
	Short: "Run input strings through an automaton",
	Long:  `Evaluates each input and prints the step-by-step trace and the verdict. Pass "" to evaluate the empty string.`,
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		a, err := loadModel(args[0])
		if err != nil {
			return err
		}
		ev := evaluator.New(evaluator.WithLogger(app.logger))
		out := cmd.OutOrStdout()
		styler := tui.NewStyler(out)

		results := make([]evaluator.Result, 0, len(args)-1)
		for _, raw := range args[1:] {
			if err := sanitize.Input(raw, app.cfg.Input.MaxSize); err != nil {
				return err
			}
			res, err := ev.Evaluate(cmd.Context(), a, raw)
			if err != nil {
				return err
			}
			results = append(results, res)
		}

		if asJSON {
			return writeJSON(out, results)
		}
		for i, res := range results {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprint(out, tui.FormatTrace(res, styler))
		}
		return nil
	},
}

var enumerateCmd = &cobra.Command{
	Use:   "enumerate <file>",
	Short: "List the shortest accepted strings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadModel(args[0])
		if err != nil {
			return err
		}
		limit, opts, err := enumerateFlags(cmd)
		if err != nil {
			return err
		}
		res, err := enumerator.Enumerate(cmd.Context(), a, limit, opts...)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(out, res)
		}
		fmt.Fprint(out, tui.FormatAccepted(res.Strings, 0))
		if res.Exhausted && len(res.Strings) < limit {
			fmt.Fprintln(out, "(the language has no further strings)")
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Describe an automaton",
	Long:  `Prints the states, alphabet, initial and accepting states, the transition table and the validity of a document.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadModel(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if brief, _ := cmd.Flags().GetBool("brief"); brief {
			fmt.Fprint(out, tui.FormatSummary(a))
			return nil
		}
		if raw, _ := cmd.Flags().GetBool("raw"); raw {
			fmt.Fprintln(out, a.String())
			return nil
		}
		return printMarkdown(out, tui.SummaryMarkdown(args[0], a, validation.Diagnose(a)))
	},
}

var graphCmd = &cobra.Command{
	Use:   "graph <file>",
	Short: "Export the automaton as a Mermaid or Graphviz diagram",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadModel(args[0])
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")

		var overlay *graph.Overlay
		if cmd.Flags().Changed("input") {
			input, _ := cmd.Flags().GetString("input")
			res, err := evaluator.Evaluate(a, input)
			if err != nil {
				return err
			}
			initial, _ := a.InitialState()
			overlay = graph.OverlayFromTrace(initial, res.Trace)
		}

		out, err := graph.Render(a, graph.Format(format), overlay)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

var newCmd = &cobra.Command{
	Use:   "new <file>",
	Short: "Write an empty automaton document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := codec.Save(domain.New(), path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd, evalCmd, enumerateCmd, showCmd, graphCmd, newCmd)

	validateCmd.Flags().Int("limit", 0, "Maximum number of missing transitions to list (0 lists all)")
	evalCmd.Flags().Bool("json", false, "Print results as JSON")
	addEnumerateFlags(enumerateCmd)
	enumerateCmd.Flags().Bool("json", false, "Print the result as JSON")
	showCmd.Flags().Bool("brief", false, "Print a short plain-text summary")
	showCmd.Flags().Bool("raw", false, "Print the definition in textbook notation")
	graphCmd.Flags().StringP("format", "f", string(graph.Mermaid), "Diagram format: mermaid or dot")
	graphCmd.Flags().String("input", "", "Highlight the run of this input (mermaid only)")
	newCmd.Flags().Bool("force", false, "Overwrite an existing file")
}

func addEnumerateFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("limit", "n", 0, "Number of strings (default: enumerate.limit)")
	cmd.Flags().Bool("include-empty", false, "Report the empty string when the initial state accepts")
	cmd.Flags().Int("max-length", 0, "Stop after strings of this length (0: no bound)")
	cmd.Flags().String("strategy", "", "Search strategy: pruned or shortlex (default: enumerate.strategy)")
}

// enumerateFlags merges the configured defaults with explicit flags.
func enumerateFlags(cmd *cobra.Command) (int, []enumerator.Option, error) {
	opts, err := enumerateDefaults(app.cfg)
	if err != nil {
		return 0, nil, err
	}
	limit := app.cfg.Enumerate.Limit
	if cmd.Flags().Changed("limit") {
		limit, _ = cmd.Flags().GetInt("limit")
		if limit <= 0 {
			return 0, nil, errors.New("--limit must be positive")
		}
	}
	if cmd.Flags().Changed("include-empty") {
		v, _ := cmd.Flags().GetBool("include-empty")
		opts = append(opts, enumerator.WithEmptyString(v))
	}
	if cmd.Flags().Changed("max-length") {
		v, _ := cmd.Flags().GetInt("max-length")
		opts = append(opts, enumerator.WithMaxLength(v))
	}
	if cmd.Flags().Changed("strategy") {
		name, _ := cmd.Flags().GetString("strategy")
		s, err := enumerator.ParseStrategy(name)
		if err != nil {
			return 0, nil, err
		}
		opts = append(opts, enumerator.WithStrategy(s))
	}
	opts = append(opts, enumerator.WithLogger(app.logger))
	return limit, opts, nil
}

func printMarkdown(w io.Writer, markdown string) error {
	if !tui.NewStyler(w).Color() {
		_, err := io.WriteString(w, markdown)
		return err
	}
	render, err := tui.NewRenderer(true)
	if err != nil {
		return err
	}
	out, err := render(markdown)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
