package domain

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Automaton is a deterministic finite automaton (Q, Σ, δ, q₀, F).
//
// Referential integrity is enforced by every mutator: the initial state, the
// accepting states and both ends of every transition must already be
// registered. Completeness (δ total over Q × Σ) is not an invariant; it is
// checked by the validation package.
//
// An Automaton is not safe for concurrent mutation.
type Automaton struct {
	states      map[string]struct{}
	alphabet    map[string]struct{}
	initial     string
	hasInitial  bool
	accepting   map[string]struct{}
	transitions map[Key]string
}

// New returns an empty automaton.
func New() *Automaton {
	return &Automaton{
		states:      make(map[string]struct{}),
		alphabet:    make(map[string]struct{}),
		accepting:   make(map[string]struct{}),
		transitions: make(map[Key]string),
	}
}

// AddState registers a state. Adding an existing state is a no-op.
func (a *Automaton) AddState(state string) error {
	if err := ValidateStateName(state); err != nil {
		return err
	}
	a.states[state] = struct{}{}
	return nil
}

// RemoveState unregisters a state together with every transition leaving or
// entering it and its accepting mark. If it was the initial state, the
// initial state becomes unset.
func (a *Automaton) RemoveState(state string) error {
	if !a.HasState(state) {
		return &ReferenceError{Kind: RefState, Value: state}
	}
	for k, to := range a.transitions {
		if k.State == state || to == state {
			delete(a.transitions, k)
		}
	}
	delete(a.accepting, state)
	if a.hasInitial && a.initial == state {
		a.ClearInitialState()
	}
	delete(a.states, state)
	return nil
}

// AddSymbol registers an alphabet symbol. Adding an existing symbol is a no-op.
func (a *Automaton) AddSymbol(symbol string) error {
	if err := ValidateSymbol(symbol); err != nil {
		return err
	}
	a.alphabet[symbol] = struct{}{}
	return nil
}

// RemoveSymbol unregisters a symbol and every transition defined on it.
func (a *Automaton) RemoveSymbol(symbol string) error {
	if !a.HasSymbol(symbol) {
		return &ReferenceError{Kind: RefSymbol, Value: symbol}
	}
	for k := range a.transitions {
		if k.Symbol == symbol {
			delete(a.transitions, k)
		}
	}
	delete(a.alphabet, symbol)
	return nil
}

// SetInitialState assigns q₀.
func (a *Automaton) SetInitialState(state string) error {
	if !a.HasState(state) {
		return &ReferenceError{Kind: RefState, Role: "initial", Value: state}
	}
	a.initial = state
	a.hasInitial = true
	return nil
}

// ClearInitialState leaves the automaton without an initial state.
func (a *Automaton) ClearInitialState() {
	a.initial = ""
	a.hasInitial = false
}

// AddAcceptingState marks a registered state as accepting.
func (a *Automaton) AddAcceptingState(state string) error {
	if !a.HasState(state) {
		return &ReferenceError{Kind: RefState, Role: "accepting", Value: state}
	}
	a.accepting[state] = struct{}{}
	return nil
}

// RemoveAcceptingState drops the accepting mark of a state.
func (a *Automaton) RemoveAcceptingState(state string) error {
	if !a.IsAccepting(state) {
		return &ReferenceError{Kind: RefState, Role: "accepting", Value: state}
	}
	delete(a.accepting, state)
	return nil
}

// AddTransition defines δ(from, symbol) = to, replacing any previous target.
func (a *Automaton) AddTransition(from, symbol, to string) error {
	if !a.HasState(from) {
		return &ReferenceError{Kind: RefState, Role: "from", Value: from}
	}
	if !a.HasSymbol(symbol) {
		return &ReferenceError{Kind: RefSymbol, Role: "symbol", Value: symbol}
	}
	if !a.HasState(to) {
		return &ReferenceError{Kind: RefState, Role: "to", Value: to}
	}
	a.transitions[Key{State: from, Symbol: symbol}] = to
	return nil
}

// RemoveTransition undefines δ(from, symbol).
func (a *Automaton) RemoveTransition(from, symbol string) error {
	k := Key{State: from, Symbol: symbol}
	if _, ok := a.transitions[k]; !ok {
		return &ReferenceError{Kind: RefTransition, Value: from + "," + symbol}
	}
	delete(a.transitions, k)
	return nil
}

// HasState reports whether state is registered.
func (a *Automaton) HasState(state string) bool {
	_, ok := a.states[state]
	return ok
}

// HasSymbol reports whether symbol belongs to the alphabet.
func (a *Automaton) HasSymbol(symbol string) bool {
	_, ok := a.alphabet[symbol]
	return ok
}

// IsAccepting reports whether state is an accepting state.
func (a *Automaton) IsAccepting(state string) bool {
	_, ok := a.accepting[state]
	return ok
}

// InitialState returns q₀ and whether it has been assigned.
func (a *Automaton) InitialState() (string, bool) {
	return a.initial, a.hasInitial
}

// Next returns δ(state, symbol).
func (a *Automaton) Next(state, symbol string) (string, bool) {
	to, ok := a.transitions[Key{State: state, Symbol: symbol}]
	return to, ok
}

// States returns the registered states in sorted order.
func (a *Automaton) States() []string { return sortedKeys(a.states) }

// Alphabet returns the symbols in sorted order.
func (a *Automaton) Alphabet() []string { return sortedKeys(a.alphabet) }

// AcceptingStates returns the accepting states in sorted order.
func (a *Automaton) AcceptingStates() []string { return sortedKeys(a.accepting) }

// Transitions returns every defined transition sorted by (from, symbol).
func (a *Automaton) Transitions() []Transition {
	out := make([]Transition, 0, len(a.transitions))
	for k, to := range a.transitions {
		out = append(out, Transition{From: k.State, Symbol: k.Symbol, To: to})
	}
	slices.SortFunc(out, func(x, y Transition) int {
		if c := strings.Compare(x.From, y.From); c != 0 {
			return c
		}
		return strings.Compare(x.Symbol, y.Symbol)
	})
	return out
}

// NumStates returns |Q|.
func (a *Automaton) NumStates() int { return len(a.states) }

// NumSymbols returns |Σ|.
func (a *Automaton) NumSymbols() int { return len(a.alphabet) }

// NumTransitions returns the number of defined (state, symbol) pairs.
func (a *Automaton) NumTransitions() int { return len(a.transitions) }

// Clone returns a deep copy.
func (a *Automaton) Clone() *Automaton {
	return &Automaton{
		states:      maps.Clone(a.states),
		alphabet:    maps.Clone(a.alphabet),
		initial:     a.initial,
		hasInitial:  a.hasInitial,
		accepting:   maps.Clone(a.accepting),
		transitions: maps.Clone(a.transitions),
	}
}

// Equal reports whether both automata define the same 5-tuple.
func (a *Automaton) Equal(b *Automaton) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.hasInitial == b.hasInitial &&
		a.initial == b.initial &&
		maps.Equal(a.states, b.states) &&
		maps.Equal(a.alphabet, b.alphabet) &&
		maps.Equal(a.accepting, b.accepting) &&
		maps.Equal(a.transitions, b.transitions)
}

// String dumps the definition in the textbook notation.
func (a *Automaton) String() string {
	var sb strings.Builder
	initial := "<unset>"
	if a.hasInitial {
		initial = a.initial
	}
	fmt.Fprintf(&sb, "Q  = {%s}\n", strings.Join(a.States(), ", "))
	fmt.Fprintf(&sb, "Σ  = {%s}\n", strings.Join(a.Alphabet(), ", "))
	fmt.Fprintf(&sb, "q₀ = %s\n", initial)
	fmt.Fprintf(&sb, "F  = {%s}\n", strings.Join(a.AcceptingStates(), ", "))
	sb.WriteString("δ:\n")
	for _, t := range a.Transitions() {
		fmt.Fprintf(&sb, "  δ(%s, %s) = %s\n", t.From, t.Symbol, t.To)
	}
	return sb.String()
}

// ValidateStateName checks that a state identifier is usable.
func ValidateStateName(state string) error {
	if state == "" {
		return fmt.Errorf("%w: state name cannot be empty", ErrInvalidState)
	}
	if strings.TrimSpace(state) != state {
		return fmt.Errorf("%w: %q has leading or trailing whitespace", ErrInvalidState, state)
	}
	return nil
}

// ValidateSymbol checks that a symbol is exactly one printable, non-space
// character.
func ValidateSymbol(symbol string) error {
	if utf8.RuneCountInString(symbol) != 1 {
		return fmt.Errorf("%w: %q must be a single character", ErrInvalidSymbol, symbol)
	}
	r, _ := utf8.DecodeRuneInString(symbol)
	if r == utf8.RuneError || unicode.IsSpace(r) || unicode.IsControl(r) {
		return fmt.Errorf("%w: %q is not a printable character", ErrInvalidSymbol, symbol)
	}
	return nil
}

func sortedKeys(m map[string]struct{}) []string {
	return slices.Sorted(maps.Keys(m))
}
