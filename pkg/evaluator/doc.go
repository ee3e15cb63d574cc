// Package evaluator runs input strings through a complete DFA.
//
// Both preconditions are checked before the first transition is taken: the
// automaton must be complete (domain.ErrNotComplete) and every rune of the
// input must be a symbol of the alphabet (domain.ErrUnknownSymbol). Once they
// hold, simulation cannot fail.
package evaluator
