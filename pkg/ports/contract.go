package ports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractAutomaton(t *testing.T) *domain.Automaton {
	t.Helper()
	a := domain.New()
	require.NoError(t, a.AddState("q0"))
	require.NoError(t, a.AddState("q,1"))
	require.NoError(t, a.AddSymbol("0"))
	require.NoError(t, a.AddSymbol("1"))
	require.NoError(t, a.SetInitialState("q0"))
	require.NoError(t, a.AddAcceptingState("q,1"))
	require.NoError(t, a.AddTransition("q0", "1", "q,1"))
	require.NoError(t, a.AddTransition("q,1", "0", "q0"))
	return a
}

// RunAutomatonStoreContract runs a suite of tests to verify that an
// AutomatonStore implementation adheres to the interface contract.
func RunAutomatonStoreContract(t *testing.T, store AutomatonStore) {
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		a := contractAutomaton(t)
		require.NoError(t, store.Save(ctx, name, a), "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.True(t, a.Equal(loaded), "loaded automaton differs:\n%s", loaded)
	})

	t.Run("Incomplete models survive", func(t *testing.T) {
		a := contractAutomaton(t)
		a.ClearInitialState()
		require.NoError(t, a.RemoveAcceptingState("q,1"))
		require.NoError(t, store.Save(ctx, name+"-partial", a))
		defer func() { _ = store.Delete(ctx, name+"-partial") }()

		loaded, err := store.Load(ctx, name+"-partial")
		require.NoError(t, err)
		assert.True(t, a.Equal(loaded))
	})

	t.Run("Copies are isolated", func(t *testing.T) {
		a := contractAutomaton(t)
		require.NoError(t, store.Save(ctx, name, a))
		require.NoError(t, a.RemoveState("q0"))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.True(t, loaded.HasState("q0"), "mutating the saved value leaked into the store")

		require.NoError(t, loaded.RemoveSymbol("1"))
		again, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.True(t, again.HasSymbol("1"), "mutating a loaded value leaked into the store")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, contractAutomaton(t)))
		require.NoError(t, store.Delete(ctx, name), "Delete should not return error")

		_, err := store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrAutomatonNotFound, "Load after Delete should return ErrAutomatonNotFound")
		assert.NoError(t, store.Delete(ctx, name), "Delete of a missing name is a no-op")
	})

	t.Run("List", func(t *testing.T) {
		names := []string{name + "-b", name + "-a"}
		for _, n := range names {
			require.NoError(t, store.Save(ctx, n, contractAutomaton(t)))
		}
		defer func() {
			for _, n := range names {
				_ = store.Delete(ctx, n)
			}
		}()

		listed, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, listed, names[0])
		assert.Contains(t, listed, names[1])
		assert.IsNonDecreasing(t, listed, "List must be sorted")
	})

	t.Run("Invalid names", func(t *testing.T) {
		for _, bad := range []string{"", "../escape", "a/b"} {
			err := store.Save(ctx, bad, contractAutomaton(t))
			assert.ErrorIs(t, err, domain.ErrInvalidName, fmt.Sprintf("Save(%q)", bad))
		}
	})
}
