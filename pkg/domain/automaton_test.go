package domain_test

import (
	"errors"
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// endsWithOne accepts binary strings ending in "1".
func endsWithOne(t *testing.T) *domain.Automaton {
	t.Helper()
	a := domain.New()
	require.NoError(t, a.AddState("q0"))
	require.NoError(t, a.AddState("q1"))
	require.NoError(t, a.AddSymbol("0"))
	require.NoError(t, a.AddSymbol("1"))
	require.NoError(t, a.SetInitialState("q0"))
	require.NoError(t, a.AddAcceptingState("q1"))
	require.NoError(t, a.AddTransition("q0", "0", "q0"))
	require.NoError(t, a.AddTransition("q0", "1", "q1"))
	require.NoError(t, a.AddTransition("q1", "0", "q1"))
	require.NoError(t, a.AddTransition("q1", "1", "q1"))
	return a
}

func TestAutomaton_Empty(t *testing.T) {
	a := domain.New()
	assert.Empty(t, a.States())
	assert.Empty(t, a.Alphabet())
	assert.Empty(t, a.AcceptingStates())
	assert.Empty(t, a.Transitions())
	_, ok := a.InitialState()
	assert.False(t, ok)
}

func TestAutomaton_SortedViews(t *testing.T) {
	a := domain.New()
	for _, s := range []string{"q2", "q0", "q1"} {
		require.NoError(t, a.AddState(s))
	}
	for _, s := range []string{"b", "a"} {
		require.NoError(t, a.AddSymbol(s))
	}
	require.NoError(t, a.AddState("q0"), "re-adding is a no-op")

	assert.Equal(t, []string{"q0", "q1", "q2"}, a.States())
	assert.Equal(t, []string{"a", "b"}, a.Alphabet())
}

func TestAutomaton_ReferenceErrors(t *testing.T) {
	tests := []struct {
		name string
		op   func(a *domain.Automaton) error
		kind domain.RefKind
		role string
	}{
		{"transition unknown from", func(a *domain.Automaton) error { return a.AddTransition("qx", "0", "q0") }, domain.RefState, "from"},
		{"transition unknown to", func(a *domain.Automaton) error { return a.AddTransition("q0", "0", "qx") }, domain.RefState, "to"},
		{"transition unknown symbol", func(a *domain.Automaton) error { return a.AddTransition("q0", "x", "q1") }, domain.RefSymbol, "symbol"},
		{"initial unknown", func(a *domain.Automaton) error { return a.SetInitialState("qx") }, domain.RefState, "initial"},
		{"accepting unknown", func(a *domain.Automaton) error { return a.AddAcceptingState("qx") }, domain.RefState, "accepting"},
		{"remove unknown state", func(a *domain.Automaton) error { return a.RemoveState("qx") }, domain.RefState, ""},
		{"remove unknown symbol", func(a *domain.Automaton) error { return a.RemoveSymbol("x") }, domain.RefSymbol, ""},
		{"remove unknown transition", func(a *domain.Automaton) error { return a.RemoveTransition("q0", "x") }, domain.RefTransition, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := endsWithOne(t)
			before := a.Clone()

			err := tt.op(a)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrReference)

			var refErr *domain.ReferenceError
			require.True(t, errors.As(err, &refErr))
			assert.Equal(t, tt.kind, refErr.Kind)
			assert.Equal(t, tt.role, refErr.Role)
			assert.True(t, before.Equal(a), "failed mutation must leave the model unchanged")
		})
	}
}

func TestAutomaton_AddTransitionNeverRegisters(t *testing.T) {
	a := domain.New()
	require.NoError(t, a.AddState("q0"))
	require.Error(t, a.AddTransition("q0", "a", "q1"))

	assert.False(t, a.HasSymbol("a"))
	assert.False(t, a.HasState("q1"))
	assert.Zero(t, a.NumTransitions())
}

func TestAutomaton_TransitionLastWriteWins(t *testing.T) {
	a := endsWithOne(t)
	require.NoError(t, a.AddTransition("q0", "0", "q1"))

	to, ok := a.Next("q0", "0")
	require.True(t, ok)
	assert.Equal(t, "q1", to)
	assert.Equal(t, 4, a.NumTransitions())
}

func TestAutomaton_InvalidNames(t *testing.T) {
	a := domain.New()
	assert.ErrorIs(t, a.AddState(""), domain.ErrInvalidState)
	assert.ErrorIs(t, a.AddState(" q0"), domain.ErrInvalidState)
	assert.ErrorIs(t, a.AddSymbol(""), domain.ErrInvalidSymbol)
	assert.ErrorIs(t, a.AddSymbol("ab"), domain.ErrInvalidSymbol)
	assert.ErrorIs(t, a.AddSymbol(" "), domain.ErrInvalidSymbol)
	assert.ErrorIs(t, a.AddSymbol("\x01"), domain.ErrInvalidSymbol)
	assert.ErrorIs(t, a.AddSymbol("\x7f"), domain.ErrInvalidSymbol)
	assert.NoError(t, a.AddSymbol("λ"), "multi-byte runes are single symbols")
	assert.NoError(t, a.AddState("q,0"), "commas are allowed in state names")
}

func TestAutomaton_RemoveStateCascades(t *testing.T) {
	a := endsWithOne(t)
	require.NoError(t, a.AddState("q2"))
	require.NoError(t, a.AddTransition("q2", "0", "q0"))

	require.NoError(t, a.RemoveState("q1"))

	assert.Equal(t, []string{"q0", "q2"}, a.States())
	assert.Empty(t, a.AcceptingStates())
	for _, tr := range a.Transitions() {
		assert.NotEqual(t, "q1", tr.From)
		assert.NotEqual(t, "q1", tr.To)
	}
	assert.Equal(t, []domain.Transition{
		{From: "q0", Symbol: "0", To: "q0"},
		{From: "q2", Symbol: "0", To: "q0"},
	}, a.Transitions())

	initial, ok := a.InitialState()
	assert.True(t, ok)
	assert.Equal(t, "q0", initial)
}

func TestAutomaton_RemoveInitialStateClearsIt(t *testing.T) {
	a := endsWithOne(t)
	require.NoError(t, a.RemoveState("q0"))

	_, ok := a.InitialState()
	assert.False(t, ok)
	assert.Equal(t, []domain.Transition{{From: "q1", Symbol: "0", To: "q1"}, {From: "q1", Symbol: "1", To: "q1"}}, a.Transitions())
}

func TestAutomaton_RemoveSymbolCascades(t *testing.T) {
	a := endsWithOne(t)
	require.NoError(t, a.RemoveSymbol("0"))

	assert.Equal(t, []string{"1"}, a.Alphabet())
	assert.Equal(t, []domain.Transition{
		{From: "q0", Symbol: "1", To: "q1"},
		{From: "q1", Symbol: "1", To: "q1"},
	}, a.Transitions())
}

func TestAutomaton_AcceptingAndTransitionRemoval(t *testing.T) {
	a := endsWithOne(t)
	require.NoError(t, a.RemoveAcceptingState("q1"))
	assert.False(t, a.IsAccepting("q1"))
	assert.ErrorIs(t, a.RemoveAcceptingState("q1"), domain.ErrReference)

	require.NoError(t, a.RemoveTransition("q1", "1"))
	_, ok := a.Next("q1", "1")
	assert.False(t, ok)
	assert.True(t, a.HasState("q1"), "removing a transition keeps its states")
}

func TestAutomaton_CloneIsIndependent(t *testing.T) {
	a := endsWithOne(t)
	b := a.Clone()
	require.True(t, a.Equal(b))

	require.NoError(t, b.RemoveState("q1"))
	assert.False(t, a.Equal(b))
	assert.True(t, a.HasState("q1"))
}

func TestAutomaton_String(t *testing.T) {
	out := endsWithOne(t).String()
	assert.Contains(t, out, "Q  = {q0, q1}")
	assert.Contains(t, out, "q₀ = q0")
	assert.Contains(t, out, "δ(q0, 1) = q1")

	assert.Contains(t, domain.New().String(), "q₀ = <unset>")
}
