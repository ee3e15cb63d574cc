// Package graph renders automata as Mermaid or Graphviz diagrams.
package graph

import (
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
)

// Format names a diagram syntax.
type Format string

const (
	Mermaid Format = "mermaid"
	DOT     Format = "dot"
)

// Render dispatches on format. The overlay is only drawn by Mermaid.
func Render(a *domain.Automaton, format Format, overlay *Overlay) (string, error) {
	switch format {
	case Mermaid, "":
		return GenerateMermaid(a, overlay), nil
	case DOT:
		return GenerateDOT(a), nil
	}
	return "", fmt.Errorf("unknown graph format %q (want mermaid or dot)", format)
}
