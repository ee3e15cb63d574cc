package dsl

import (
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
)

// Builder manages the automaton construction.
type Builder struct {
	order    []string
	states   map[string]*StateBuilder
	alphabet []string
	initial  string
}

// New creates a new automaton builder.
func New() *Builder {
	return &Builder{
		states: make(map[string]*StateBuilder),
	}
}

// Alphabet appends symbols to the alphabet.
func (b *Builder) Alphabet(symbols ...string) *Builder {
	b.alphabet = append(b.alphabet, symbols...)
	return b
}

// State declares a state.
// If the state already exists, it returns the existing builder.
func (b *Builder) State(name string) *StateBuilder {
	if sb, ok := b.states[name]; ok {
		return sb
	}
	sb := &StateBuilder{name: name, builder: b}
	b.states[name] = sb
	b.order = append(b.order, name)
	return sb
}

// Build compiles the declarations into an Automaton.
func (b *Builder) Build() (*domain.Automaton, error) {
	a := domain.New()
	for _, name := range b.order {
		if err := a.AddState(name); err != nil {
			return nil, fmt.Errorf("failed to build automaton: %w", err)
		}
	}
	for _, sym := range b.alphabet {
		if err := a.AddSymbol(sym); err != nil {
			return nil, fmt.Errorf("failed to build automaton: %w", err)
		}
	}
	if b.initial != "" {
		if err := a.SetInitialState(b.initial); err != nil {
			return nil, fmt.Errorf("failed to build automaton: %w", err)
		}
	}
	for _, name := range b.order {
		if b.states[name].accepting {
			if err := a.AddAcceptingState(name); err != nil {
				return nil, fmt.Errorf("failed to build automaton: %w", err)
			}
		}
	}
	for _, name := range b.order {
		for _, e := range b.states[name].edges {
			if err := a.AddTransition(name, e.symbol, e.to); err != nil {
				return nil, fmt.Errorf("failed to build automaton: %w", err)
			}
		}
	}
	return a, nil
}

// MustBuild is like Build but panics on error. Meant for fixtures and the
// built-in catalog.
func (b *Builder) MustBuild() *domain.Automaton {
	a, err := b.Build()
	if err != nil {
		panic(err)
	}
	return a
}
