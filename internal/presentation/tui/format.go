package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/evaluator"
	"github.com/aretw0/automata/pkg/validation"
)

const rule = "------------------------------"

// FormatTrace shows an evaluation step by step followed by the verdict.
func FormatTrace(res evaluator.Result, s Styler) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Evaluating string: '%s'\n", res.Input)
	sb.WriteString(rule + "\n")
	for i, step := range res.Trace {
		fmt.Fprintf(&sb, "%d. From state (%s) with symbol '%s' transitions to state (%s).\n",
			i+1, step.From, step.Symbol, step.To)
	}
	if len(res.Trace) == 0 {
		fmt.Fprintf(&sb, "%s\n", s.Muted(fmt.Sprintf("No symbols read; stayed in (%s).", res.Final)))
	}
	sb.WriteString(rule + "\n")
	fmt.Fprintf(&sb, "Result: The string '%s' is %s.\n", res.Input, s.Verdict(res.Accepted))
	return sb.String()
}

// FormatSummary is a concise plain-text summary of a definition.
func FormatSummary(a *domain.Automaton) string {
	initial, ok := a.InitialState()
	if !ok {
		initial = "(unset)"
	}
	var sb strings.Builder
	sb.WriteString("Automaton Summary:\n")
	fmt.Fprintf(&sb, "  States: %s\n", setOf(a.States()))
	fmt.Fprintf(&sb, "  Alphabet: %s\n", setOf(a.Alphabet()))
	fmt.Fprintf(&sb, "  Initial State: %s\n", initial)
	fmt.Fprintf(&sb, "  Accepting States: %s\n", setOf(a.AcceptingStates()))
	fmt.Fprintf(&sb, "  Total Transitions: %d\n", a.NumTransitions())
	fmt.Fprintf(&sb, "  Valid: %t\n", validation.IsComplete(a))
	return sb.String()
}

// FormatAccepted lists at most maxDisplay strings, numbered from 1.
// A maxDisplay <= 0 shows everything.
func FormatAccepted(strs []string, maxDisplay int) string {
	if len(strs) == 0 {
		return "No accepted strings found.\n"
	}
	shown := strs
	if maxDisplay > 0 && len(strs) > maxDisplay {
		shown = strs[:maxDisplay]
	}

	var sb strings.Builder
	sb.WriteString("Accepted strings:\n")
	sb.WriteString(rule[:20] + "\n")
	for i, str := range shown {
		fmt.Fprintf(&sb, "%2d. '%s'\n", i+1, str)
	}
	if rest := len(strs) - len(shown); rest > 0 {
		fmt.Fprintf(&sb, "... and %d more\n", rest)
	}
	return sb.String()
}

// SummaryMarkdown describes the definition as a markdown document with the
// transition function as a table (rows are states, columns are symbols).
func SummaryMarkdown(name string, a *domain.Automaton, report validation.Report) string {
	initial, hasInitial := a.InitialState()

	var sb strings.Builder
	if name == "" {
		name = "Automaton"
	}
	fmt.Fprintf(&sb, "# %s\n\n", name)
	fmt.Fprintf(&sb, "- **States:** %s\n", codeList(a.States()))
	fmt.Fprintf(&sb, "- **Alphabet:** %s\n", codeList(a.Alphabet()))
	if hasInitial {
		fmt.Fprintf(&sb, "- **Initial state:** `%s`\n", initial)
	} else {
		sb.WriteString("- **Initial state:** _unset_\n")
	}
	fmt.Fprintf(&sb, "- **Accepting states:** %s\n\n", codeList(a.AcceptingStates()))

	if a.NumStates() > 0 && a.NumSymbols() > 0 {
		sb.WriteString("## Transitions\n\n")
		sb.WriteString("| δ |")
		for _, sym := range a.Alphabet() {
			fmt.Fprintf(&sb, " `%s` |", cell(sym))
		}
		sb.WriteString("\n|---|")
		for range a.Alphabet() {
			sb.WriteString("---|")
		}
		sb.WriteString("\n")
		for _, st := range a.States() {
			marker := ""
			if hasInitial && st == initial {
				marker += "→"
			}
			if a.IsAccepting(st) {
				marker += "*"
			}
			fmt.Fprintf(&sb, "| %s`%s` |", marker, cell(st))
			for _, sym := range a.Alphabet() {
				if to, ok := a.Next(st, sym); ok {
					fmt.Fprintf(&sb, " `%s` |", cell(to))
				} else {
					sb.WriteString(" ∅ |")
				}
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Validity\n\n")
	if report.Complete() {
		sb.WriteString("Complete DFA.\n")
	} else {
		sb.WriteString("Not a complete DFA:\n\n")
		for _, f := range report.Findings {
			fmt.Fprintf(&sb, "- %s\n", f.Message())
		}
		if report.Omitted > 0 {
			fmt.Fprintf(&sb, "- ... and %d more missing transitions\n", report.Omitted)
		}
	}
	if hasInitial {
		if unreachable := validation.Unreachable(a); len(unreachable) > 0 {
			fmt.Fprintf(&sb, "\nUnreachable from `%s`: %s\n", initial, codeList(unreachable))
		}
	}
	return sb.String()
}

func setOf(items []string) string {
	return "{" + strings.Join(items, ", ") + "}"
}

func codeList(items []string) string {
	if len(items) == 0 {
		return "_none_"
	}
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = "`" + it + "`"
	}
	return strings.Join(quoted, ", ")
}

// cell escapes the table separator.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
