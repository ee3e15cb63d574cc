package codec

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Document is the persisted shape of an automaton.
type Document struct {
	States          []string    `json:"states" yaml:"states"`
	Alphabet        []string    `json:"alphabet" yaml:"alphabet"`
	InitialState    *string     `json:"initial_state" yaml:"initial_state"`
	AcceptingStates []string    `json:"accepting_states" yaml:"accepting_states"`
	Transitions     Transitions `json:"transitions" yaml:"transitions"`
}

// Transitions is the tagged union of the two transition encodings.
// At most one of List and Legacy is set.
type Transitions struct {
	List   []domain.Transition
	Legacy map[string]string
}

// IsLegacy reports whether the transitions came from the mapping encoding.
func (t Transitions) IsLegacy() bool {
	return t.List == nil && t.Legacy != nil
}

// Records normalizes either encoding to the list form. Legacy keys are
// split at their last comma and returned in sorted key order.
func (t Transitions) Records() ([]domain.Transition, error) {
	if !t.IsLegacy() {
		if t.List == nil {
			return []domain.Transition{}, nil
		}
		return t.List, nil
	}

	keys := make([]string, 0, len(t.Legacy))
	for k := range t.Legacy {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]domain.Transition, 0, len(keys))
	for _, k := range keys {
		from, symbol, err := SplitLegacyKey(k)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.Transition{From: from, Symbol: symbol, To: t.Legacy[k]})
	}
	return out, nil
}

// SplitLegacyKey splits "<from>,<symbol>" at the last comma.
func SplitLegacyKey(key string) (from, symbol string, err error) {
	i := strings.LastIndex(key, ",")
	if i < 0 {
		return "", "", &FormatError{Field: "transitions", Err: fmt.Errorf("legacy key %q has no comma separator", key)}
	}
	return key[:i], key[i+1:], nil
}

// MarshalJSON always writes the list encoding.
func (t Transitions) MarshalJSON() ([]byte, error) {
	records, err := t.Records()
	if err != nil {
		return nil, err
	}
	return json.Marshal(records)
}

// MarshalYAML always writes the list encoding.
func (t Transitions) MarshalYAML() (any, error) {
	return t.Records()
}

// Encode captures the automaton as a document. Collections are sorted and
// never nil; an unset initial state becomes a nil pointer.
func Encode(a *domain.Automaton) Document {
	doc := Document{
		States:          nonNil(a.States()),
		Alphabet:        nonNil(a.Alphabet()),
		AcceptingStates: nonNil(a.AcceptingStates()),
		Transitions:     Transitions{List: a.Transitions()},
	}
	if initial, ok := a.InitialState(); ok {
		doc.InitialState = &initial
	}
	return doc
}

// Decode builds an automaton from a document in construction order.
func Decode(doc Document) (*domain.Automaton, error) {
	a := domain.New()
	for _, s := range doc.States {
		if err := a.AddState(s); err != nil {
			return nil, &FormatError{Field: "states", Err: err}
		}
	}
	for _, sym := range doc.Alphabet {
		if err := a.AddSymbol(sym); err != nil {
			return nil, &FormatError{Field: "alphabet", Err: err}
		}
	}
	if doc.InitialState != nil {
		if err := a.SetInitialState(*doc.InitialState); err != nil {
			return nil, &FormatError{Field: "initial_state", Err: err}
		}
	}
	for _, s := range doc.AcceptingStates {
		if err := a.AddAcceptingState(s); err != nil {
			return nil, &FormatError{Field: "accepting_states", Err: err}
		}
	}

	records, err := doc.Transitions.Records()
	if err != nil {
		return nil, err
	}
	for i, t := range records {
		if err := a.AddTransition(t.From, t.Symbol, t.To); err != nil {
			return nil, &FormatError{Field: fmt.Sprintf("transitions[%d]", i), Err: err}
		}
	}
	return a, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
