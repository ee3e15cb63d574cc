package dsl

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	name      string
	accepting bool
	edges     []edge
	builder   *Builder
}

type edge struct {
	symbol string
	to     string
}

// Initial marks the state as q₀, replacing any previous choice.
func (s *StateBuilder) Initial() *StateBuilder {
	s.builder.initial = s.name
	return s
}

// Accepting marks the state as accepting.
func (s *StateBuilder) Accepting() *StateBuilder {
	s.accepting = true
	return s
}

// On adds the transition δ(s, symbol) = target.
// The target does not need to be declared yet; it is declared implicitly.
func (s *StateBuilder) On(symbol, target string) *StateBuilder {
	s.builder.State(target)
	s.edges = append(s.edges, edge{symbol: symbol, to: target})
	return s
}

// State switches to another state, for chaining.
func (s *StateBuilder) State(name string) *StateBuilder {
	return s.builder.State(name)
}
