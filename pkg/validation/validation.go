package validation

import (
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
)

// Kind classifies a finding.
type Kind string

const (
	KindNoStates          Kind = "no_states"
	KindNoAlphabet        Kind = "no_alphabet"
	KindNoInitialState    Kind = "no_initial_state"
	KindInitialUnknown    Kind = "initial_state_unknown"
	KindAcceptingUnknown  Kind = "accepting_state_unknown"
	KindMissingTransition Kind = "missing_transition"
)

// Finding is a single problem that keeps an automaton from being complete.
// State and Symbol hold the offending key when the kind has one.
type Finding struct {
	Kind   Kind   `json:"kind"`
	State  string `json:"state,omitempty"`
	Symbol string `json:"symbol,omitempty"`
}

// Message renders the finding for humans.
func (f Finding) Message() string {
	switch f.Kind {
	case KindNoStates:
		return "no states defined"
	case KindNoAlphabet:
		return "no alphabet defined"
	case KindNoInitialState:
		return "no initial state defined"
	case KindInitialUnknown:
		return fmt.Sprintf("initial state %q is not in the set of states", f.State)
	case KindAcceptingUnknown:
		return fmt.Sprintf("accepting state %q is not in the set of states", f.State)
	case KindMissingTransition:
		return fmt.Sprintf("missing transition δ(%s, %s)", f.State, f.Symbol)
	default:
		return string(f.Kind)
	}
}

func (f Finding) Error() string { return f.Message() }

// Report is the outcome of Diagnose.
type Report struct {
	Findings []Finding `json:"findings"`
	// Omitted is the number of missing transitions dropped by the cap.
	Omitted int `json:"omitted,omitempty"`
}

// Complete reports whether no problem was found.
func (r Report) Complete() bool {
	return len(r.Findings) == 0 && r.Omitted == 0
}

// Missing returns the (state, symbol) pairs reported as missing transitions.
func (r Report) Missing() []domain.Key {
	var keys []domain.Key
	for _, f := range r.Findings {
		if f.Kind == KindMissingTransition {
			keys = append(keys, domain.Key{State: f.State, Symbol: f.Symbol})
		}
	}
	return keys
}

// Err aggregates the findings into an *AggregateError, or nil when complete.
func (r Report) Err() error {
	if r.Complete() {
		return nil
	}
	errs := make([]error, 0, len(r.Findings))
	for _, f := range r.Findings {
		errs = append(errs, f)
	}
	return &AggregateError{Errors: errs, Omitted: r.Omitted}
}

// Option configures Diagnose.
type Option func(*options)

type options struct {
	missingLimit int
}

// WithMissingLimit caps the number of missing transitions listed in the
// report. The remainder is counted in Report.Omitted. n <= 0 means no cap.
func WithMissingLimit(n int) Option {
	return func(o *options) {
		o.missingLimit = n
	}
}

// IsComplete reports whether the automaton is a complete DFA: non-empty
// states and alphabet, a registered initial state, accepting states within
// the states, and a transition for every (state, symbol) pair.
func IsComplete(a *domain.Automaton) bool {
	if a.NumStates() == 0 || a.NumSymbols() == 0 {
		return false
	}
	initial, ok := a.InitialState()
	if !ok || !a.HasState(initial) {
		return false
	}
	for _, s := range a.AcceptingStates() {
		if !a.HasState(s) {
			return false
		}
	}
	if a.NumTransitions() < a.NumStates()*a.NumSymbols() {
		return false
	}
	alphabet := a.Alphabet()
	for _, s := range a.States() {
		for _, sym := range alphabet {
			if _, ok := a.Next(s, sym); !ok {
				return false
			}
		}
	}
	return true
}

// Diagnose runs the same checks as IsComplete without stopping at the first
// failure. Missing transitions are listed in (state, symbol) order.
func Diagnose(a *domain.Automaton, opts ...Option) Report {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	var r Report
	if a.NumStates() == 0 {
		r.Findings = append(r.Findings, Finding{Kind: KindNoStates})
	}
	if a.NumSymbols() == 0 {
		r.Findings = append(r.Findings, Finding{Kind: KindNoAlphabet})
	}

	initial, ok := a.InitialState()
	switch {
	case !ok:
		r.Findings = append(r.Findings, Finding{Kind: KindNoInitialState})
	case !a.HasState(initial):
		r.Findings = append(r.Findings, Finding{Kind: KindInitialUnknown, State: initial})
	}

	for _, s := range a.AcceptingStates() {
		if !a.HasState(s) {
			r.Findings = append(r.Findings, Finding{Kind: KindAcceptingUnknown, State: s})
		}
	}

	listed := 0
	alphabet := a.Alphabet()
	for _, s := range a.States() {
		for _, sym := range alphabet {
			if _, ok := a.Next(s, sym); ok {
				continue
			}
			if o.missingLimit > 0 && listed >= o.missingLimit {
				r.Omitted++
				continue
			}
			r.Findings = append(r.Findings, Finding{Kind: KindMissingTransition, State: s, Symbol: sym})
			listed++
		}
	}
	return r
}

// Require returns nil for a complete automaton and an *IncompleteError
// (matching domain.ErrNotComplete) otherwise.
func Require(a *domain.Automaton) error {
	if IsComplete(a) {
		return nil
	}
	return &IncompleteError{Report: Diagnose(a)}
}

// Summary condenses an automaton into counts, as shown by store listings.
type Summary struct {
	States      int  `json:"states"`
	Symbols     int  `json:"symbols"`
	Transitions int  `json:"transitions"`
	Accepting   int  `json:"accepting_states"`
	HasInitial  bool `json:"has_initial_state"`
	Complete    bool `json:"complete"`
}

// Summarize counts the components of a and checks completeness.
func Summarize(a *domain.Automaton) Summary {
	_, hasInitial := a.InitialState()
	return Summary{
		States:      a.NumStates(),
		Symbols:     a.NumSymbols(),
		Transitions: a.NumTransitions(),
		Accepting:   len(a.AcceptingStates()),
		HasInitial:  hasInitial,
		Complete:    IsComplete(a),
	}
}
