/*
Package dsl provides a fluent builder for constructing automata in Go code.

States may be referenced by transitions before they are declared; Build
registers everything in construction order (states, alphabet, initial state,
accepting states, transitions) so the result is checked by the same mutators
a document decoder uses.

Example usage:

	b := dsl.New().Alphabet("0", "1")

	b.State("q0").Initial().
		On("0", "q0").
		On("1", "q1")

	b.State("q1").Accepting().
		On("0", "q1").
		On("1", "q1")

	a, err := b.Build()
*/
package dsl
