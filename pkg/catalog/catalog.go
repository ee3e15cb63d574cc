// Package catalog holds the built-in example automata.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/dsl"
)

// ErrUnknownExample is returned by Lookup for a name that is not in the catalog.
var ErrUnknownExample = errors.New("example not found")

// Example is a named automaton with a short description of its language.
type Example struct {
	Name        string
	Description string
	Build       func() *domain.Automaton
}

var examples = []Example{
	{"binary_ending_one", "Binary strings containing at least one '1'", BinaryEndingWithOne},
	{"even_length", "Strings of even length", EvenLength},
	{"ending_01", "Binary strings ending with '01'", EndingWith01},
	{"exactly_two_as", "Strings with exactly two 'a's", ExactlyTwoAs},
	{"contains_ab", "Strings containing substring 'ab'", ContainsAB},
}

// All returns every example in catalog order.
func All() []Example {
	out := make([]Example, len(examples))
	copy(out, examples)
	return out
}

// Names returns the example names in catalog order.
func Names() []string {
	names := make([]string, len(examples))
	for i, ex := range examples {
		names[i] = ex.Name
	}
	return names
}

// Lookup finds an example by name.
func Lookup(name string) (Example, error) {
	for _, ex := range examples {
		if ex.Name == name {
			return ex, nil
		}
	}
	return Example{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownExample, name, strings.Join(Names(), ", "))
}

// Build constructs the example with the given name.
func Build(name string) (*domain.Automaton, error) {
	ex, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return ex.Build(), nil
}

// BinaryEndingWithOne is the classic two-state automaton over {0, 1}. Once a
// '1' is read it stays in the accepting state.
func BinaryEndingWithOne() *domain.Automaton {
	b := dsl.New().Alphabet("0", "1")
	b.State("q0").Initial().
		On("0", "q0").
		On("1", "q1")
	b.State("q1").Accepting().
		On("0", "q1").
		On("1", "q1")
	return b.MustBuild()
}

// EvenLength accepts strings over {a, b} of even length, including "".
func EvenLength() *domain.Automaton {
	b := dsl.New().Alphabet("a", "b")
	b.State("q0").Initial().Accepting().
		On("a", "q1").
		On("b", "q1")
	b.State("q1").
		On("a", "q0").
		On("b", "q0")
	return b.MustBuild()
}

// EndingWith01 accepts binary strings whose last two symbols are "01".
func EndingWith01() *domain.Automaton {
	b := dsl.New().Alphabet("0", "1")
	b.State("q0").Initial().
		On("0", "q1").
		On("1", "q0")
	b.State("q1").
		On("0", "q1").
		On("1", "q2")
	b.State("q2").Accepting().
		On("0", "q1").
		On("1", "q0")
	return b.MustBuild()
}

// ExactlyTwoAs accepts strings over {a, b} with exactly two a's. q3 is a trap.
func ExactlyTwoAs() *domain.Automaton {
	b := dsl.New().Alphabet("a", "b")
	b.State("q0").Initial().
		On("a", "q1").
		On("b", "q0")
	b.State("q1").
		On("a", "q2").
		On("b", "q1")
	b.State("q2").Accepting().
		On("a", "q3").
		On("b", "q2")
	b.State("q3").
		On("a", "q3").
		On("b", "q3")
	return b.MustBuild()
}

// ContainsAB accepts strings over {a, b} containing "ab".
func ContainsAB() *domain.Automaton {
	b := dsl.New().Alphabet("a", "b")
	b.State("q0").Initial().
		On("a", "q1").
		On("b", "q0")
	b.State("q1").
		On("a", "q1").
		On("b", "q2")
	b.State("q2").Accepting().
		On("a", "q2").
		On("b", "q2")
	return b.MustBuild()
}
