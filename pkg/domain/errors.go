package domain

import (
	"errors"
	"fmt"
)

// ErrReference is returned when a mutation references a state, symbol or
// transition that is not registered in the automaton.
var ErrReference = errors.New("unknown reference")

// ErrNotComplete is returned when an operation that requires a total
// transition function is invoked on an incomplete automaton.
var ErrNotComplete = errors.New("automaton is not complete")

// ErrUnknownSymbol is returned when an input string contains a symbol outside the alphabet.
var ErrUnknownSymbol = errors.New("symbol not in alphabet")

// ErrFormat is returned when a persisted document is malformed.
var ErrFormat = errors.New("malformed automaton document")

// ErrInvalidState is returned when a state identifier is empty or padded with whitespace.
var ErrInvalidState = errors.New("invalid state name")

// ErrInvalidSymbol is returned when a symbol is not exactly one non-space character.
var ErrInvalidSymbol = errors.New("invalid symbol")

// ErrAutomatonNotFound is returned when a named automaton cannot be found in a store.
var ErrAutomatonNotFound = errors.New("automaton not found")

// RefKind names the component a ReferenceError points at.
type RefKind string

const (
	RefState      RefKind = "state"
	RefSymbol     RefKind = "symbol"
	RefTransition RefKind = "transition"
)

// ReferenceError describes a mutation that referenced an unregistered element.
// Role tells which argument was at fault ("from", "to", "initial", "accepting", ...).
type ReferenceError struct {
	Kind  RefKind
	Role  string
	Value string
}

func (e *ReferenceError) Error() string {
	if e.Role == "" {
		return fmt.Sprintf("unknown %s %q", e.Kind, e.Value)
	}
	return fmt.Sprintf("unknown %s %q (%s)", e.Kind, e.Value, e.Role)
}

func (e *ReferenceError) Unwrap() error { return ErrReference }

// SymbolError reports an input symbol that is not part of the alphabet.
// Position is the rune index inside the input.
type SymbolError struct {
	Symbol   string
	Position int
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("symbol %q at position %d is not in the alphabet", e.Symbol, e.Position)
}

func (e *SymbolError) Unwrap() error { return ErrUnknownSymbol }

// ErrInvalidName is returned when an automaton name cannot be used as a storage key.
var ErrInvalidName = errors.New("invalid automaton name")

// ErrAutomatonExists is returned when creating a name that is already taken.
var ErrAutomatonExists = errors.New("automaton already exists")
