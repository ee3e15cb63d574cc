package domain_test

import (
	"errors"
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEdits_BuildsAutomaton(t *testing.T) {
	script := []domain.Edit{
		{Op: domain.OpAddState, State: "q0"},
		{Op: domain.OpAddState, State: "q1"},
		{Op: domain.OpAddSymbol, Symbol: "0"},
		{Op: domain.OpAddSymbol, Symbol: "1"},
		{Op: domain.OpSetInitial, State: "q0"},
		{Op: domain.OpAddAccepting, State: "q1"},
		{Op: domain.OpAddTransition, From: "q0", Symbol: "0", To: "q0"},
		{Op: domain.OpAddTransition, From: "q0", Symbol: "1", To: "q1"},
		{Op: domain.OpAddTransition, From: "q1", Symbol: "0", To: "q1"},
		{Op: domain.OpAddTransition, From: "q1", Symbol: "1", To: "q1"},
	}

	got, err := domain.New().ApplyEdits(script)
	require.NoError(t, err)
	assert.True(t, endsWithOne(t).Equal(got))
}

func TestApplyEdits_AllOrNothing(t *testing.T) {
	a := endsWithOne(t)
	before := a.Clone()

	_, err := a.ApplyEdits([]domain.Edit{
		{Op: domain.OpRemoveState, State: "q1"},
		{Op: domain.OpAddTransition, From: "q0", Symbol: "2", To: "q0"},
	})
	require.Error(t, err)

	var editErr *domain.EditError
	require.True(t, errors.As(err, &editErr))
	assert.Equal(t, 1, editErr.Index)
	assert.Equal(t, domain.OpAddTransition, editErr.Op)
	assert.ErrorIs(t, err, domain.ErrReference)
	assert.True(t, before.Equal(a), "receiver must not change")
}

func TestApply_UnknownOp(t *testing.T) {
	err := domain.New().Apply(domain.Edit{Op: "explode"})
	assert.ErrorIs(t, err, domain.ErrUnknownEdit)
}

func TestApply_ClearInitialAndRemovals(t *testing.T) {
	got, err := endsWithOne(t).ApplyEdits([]domain.Edit{
		{Op: domain.OpClearInitial},
		{Op: domain.OpRemoveAccepting, State: "q1"},
		{Op: domain.OpRemoveTransition, From: "q0", Symbol: "0"},
		{Op: domain.OpRemoveSymbol, Symbol: "1"},
	})
	require.NoError(t, err)

	_, ok := got.InitialState()
	assert.False(t, ok)
	assert.Empty(t, got.AcceptingStates())
	assert.Equal(t, []domain.Transition{{From: "q1", Symbol: "0", To: "q1"}}, got.Transitions())
}
