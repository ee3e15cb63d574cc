package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Overlay contains evaluation data to highlight on the graph.
type Overlay struct {
	Trace   []domain.Step
	Current string
}

// OverlayFromTrace highlights every state a run went through and the state it
// ended in. For an empty trace only the start state is highlighted.
func OverlayFromTrace(start string, trace []domain.Step) *Overlay {
	o := &Overlay{Trace: trace, Current: start}
	if len(trace) > 0 {
		o.Current = trace[len(trace)-1].To
	}
	return o
}

func (o *Overlay) visited() []string {
	if len(o.Trace) == 0 {
		return nil
	}
	out := []string{o.Trace[0].From}
	for _, s := range o.Trace {
		out = append(out, s.To)
	}
	return out
}

// GenerateMermaid produces a Mermaid flowchart of the automaton.
// Shapes:
// - State: ((Circle))
// - Accepting state: (((Double circle)))
// - Initial marker: a small start node pointing at q₀
//
// Transitions sharing endpoints are merged into one edge labelled with every
// symbol. Overlay styles (visited/current) are applied if provided.
func GenerateMermaid(a *domain.Automaton, overlay *Overlay) string {
	ids := nodeIDs(a)

	var sb strings.Builder
	sb.WriteString("graph LR\n")

	if initial, ok := a.InitialState(); ok {
		sb.WriteString("    start_[ ]:::hidden\n")
		sb.WriteString(fmt.Sprintf("    start_ --> %s\n", ids[initial]))
	}

	for _, s := range a.States() {
		opener, closer := "((", "))"
		if a.IsAccepting(s) {
			opener, closer = "(((", ")))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", ids[s], opener, mermaidLabel(s), closer))
	}

	for _, e := range mergeEdges(a) {
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", ids[e.from], mermaidLabel(e.label()), ids[e.to]))
	}

	sb.WriteString("    classDef hidden display:none;\n")

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, s := range overlay.visited() {
			id, ok := ids[s]
			if !ok || seen[id] || s == overlay.Current {
				continue
			}
			seen[id] = true
			sb.WriteString(fmt.Sprintf("    class %s visited;\n", id))
		}
		if id, ok := ids[overlay.Current]; ok {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", id))
		}
	}

	return sb.String()
}

// nodeIDs assigns positional identifiers, since state names may contain
// characters Mermaid and DOT reserve.
func nodeIDs(a *domain.Automaton) map[string]string {
	ids := make(map[string]string, a.NumStates())
	for i, s := range a.States() {
		ids[s] = fmt.Sprintf("s%d", i)
	}
	return ids
}

func mermaidLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}

type edge struct {
	from, to string
	symbols  []string
}

func (e edge) label() string {
	return strings.Join(e.symbols, ",")
}

// mergeEdges groups transitions by (from, to), keeping the first-seen order.
func mergeEdges(a *domain.Automaton) []edge {
	var edges []edge
	index := make(map[[2]string]int)
	for _, t := range a.Transitions() {
		k := [2]string{t.From, t.To}
		i, ok := index[k]
		if !ok {
			i = len(edges)
			index[k] = i
			edges = append(edges, edge{from: t.From, to: t.To})
		}
		edges[i].symbols = append(edges[i].symbols, t.Symbol)
	}
	return edges
}
