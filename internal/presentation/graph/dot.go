package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// GenerateDOT produces a Graphviz digraph of the automaton.
func GenerateDOT(a *domain.Automaton) string {
	ids := nodeIDs(a)

	var sb strings.Builder
	sb.WriteString("digraph automaton {\n")
	sb.WriteString("    rankdir=LR;\n")
	sb.WriteString("    node [shape=circle];\n")

	if initial, ok := a.InitialState(); ok {
		sb.WriteString("    start_ [shape=point];\n")
		sb.WriteString(fmt.Sprintf("    start_ -> %s;\n", ids[initial]))
	}
	for _, s := range a.States() {
		shape := ""
		if a.IsAccepting(s) {
			shape = ", shape=doublecircle"
		}
		sb.WriteString(fmt.Sprintf("    %s [label=%s%s];\n", ids[s], dotQuote(s), shape))
	}
	for _, e := range mergeEdges(a) {
		sb.WriteString(fmt.Sprintf("    %s -> %s [label=%s];\n", ids[e.from], ids[e.to], dotQuote(e.label())))
	}
	sb.WriteString("}\n")
	return sb.String()
}

func dotQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
