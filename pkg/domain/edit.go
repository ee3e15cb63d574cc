package domain

import (
	"errors"
	"fmt"
)

// EditOp names a mutator that can be scripted.
type EditOp string

const (
	OpAddState         EditOp = "add_state"
	OpRemoveState      EditOp = "remove_state"
	OpAddSymbol        EditOp = "add_symbol"
	OpRemoveSymbol     EditOp = "remove_symbol"
	OpSetInitial       EditOp = "set_initial_state"
	OpClearInitial     EditOp = "clear_initial_state"
	OpAddAccepting     EditOp = "add_accepting_state"
	OpRemoveAccepting  EditOp = "remove_accepting_state"
	OpAddTransition    EditOp = "add_transition"
	OpRemoveTransition EditOp = "remove_transition"
)

// ErrUnknownEdit is returned for an edit whose Op is not recognised.
var ErrUnknownEdit = errors.New("unknown edit operation")

// Edit is one scripted mutation. Only the fields relevant to Op are read:
// State for state/accepting/initial ops, Symbol for symbol ops, and
// From/Symbol/To for transitions.
type Edit struct {
	Op     EditOp `json:"op" yaml:"op" mapstructure:"op"`
	State  string `json:"state,omitempty" yaml:"state,omitempty" mapstructure:"state"`
	Symbol string `json:"symbol,omitempty" yaml:"symbol,omitempty" mapstructure:"symbol"`
	From   string `json:"from_state,omitempty" yaml:"from_state,omitempty" mapstructure:"from_state"`
	To     string `json:"to_state,omitempty" yaml:"to_state,omitempty" mapstructure:"to_state"`
}

// EditError locates the failing edit inside a script.
type EditError struct {
	Index int
	Op    EditOp
	Err   error
}

func (e *EditError) Error() string {
	return fmt.Sprintf("edit #%d (%s): %v", e.Index, e.Op, e.Err)
}

func (e *EditError) Unwrap() error { return e.Err }

// Apply runs a single edit against the automaton.
func (a *Automaton) Apply(e Edit) error {
	switch e.Op {
	case OpAddState:
		return a.AddState(e.State)
	case OpRemoveState:
		return a.RemoveState(e.State)
	case OpAddSymbol:
		return a.AddSymbol(e.Symbol)
	case OpRemoveSymbol:
		return a.RemoveSymbol(e.Symbol)
	case OpSetInitial:
		return a.SetInitialState(e.State)
	case OpClearInitial:
		a.ClearInitialState()
		return nil
	case OpAddAccepting:
		return a.AddAcceptingState(e.State)
	case OpRemoveAccepting:
		return a.RemoveAcceptingState(e.State)
	case OpAddTransition:
		return a.AddTransition(e.From, e.Symbol, e.To)
	case OpRemoveTransition:
		return a.RemoveTransition(e.From, e.Symbol)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEdit, e.Op)
	}
}

// ApplyEdits runs a script all-or-nothing: the edits are applied to a clone
// and the clone is returned only if every edit succeeded. The receiver is
// never modified.
func (a *Automaton) ApplyEdits(edits []Edit) (*Automaton, error) {
	next := a.Clone()
	for i, e := range edits {
		if err := next.Apply(e); err != nil {
			return nil, &EditError{Index: i, Op: e.Op, Err: err}
		}
	}
	return next, nil
}
