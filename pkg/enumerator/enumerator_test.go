package enumerator_test

import (
	"context"
	"testing"

	"github.com/aretw0/automata/pkg/catalog"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/dsl"
	"github.com/aretw0/automata/pkg/enumerator"
	"github.com/aretw0/automata/pkg/evaluator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var strategies = []enumerator.Strategy{enumerator.Pruned, enumerator.Shortlex}

// singleSymbol accepts exactly "a" and "b".
func singleSymbol(t *testing.T) *domain.Automaton {
	t.Helper()
	b := dsl.New().Alphabet("a", "b")
	b.State("s0").Initial().On("a", "s1").On("b", "s1")
	b.State("s1").Accepting().On("a", "dead").On("b", "dead")
	b.State("dead").On("a", "dead").On("b", "dead")
	a, err := b.Build()
	require.NoError(t, err)
	return a
}

func TestShortestAccepted_BinaryScenario(t *testing.T) {
	for _, s := range strategies {
		t.Run(s.String(), func(t *testing.T) {
			got, err := enumerator.ShortestAccepted(catalog.BinaryEndingWithOne(), 3, enumerator.WithStrategy(s))
			require.NoError(t, err)
			assert.Equal(t, []string{"1", "01", "10"}, got)
		})
	}
}

func TestShortestAccepted_StrategiesDiffer(t *testing.T) {
	a := catalog.ContainsAB()

	pruned, err := enumerator.ShortestAccepted(a, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"ab", "aab", "aba", "abb", "aaab"}, pruned)

	shortlex, err := enumerator.ShortestAccepted(a, 5, enumerator.WithStrategy(enumerator.Shortlex))
	require.NoError(t, err)
	assert.Equal(t, []string{"ab", "aab", "aba", "abb", "bab"}, shortlex)
}

func TestShortestAccepted_Properties(t *testing.T) {
	for _, ex := range catalog.All() {
		for _, s := range strategies {
			t.Run(ex.Name+"/"+s.String(), func(t *testing.T) {
				a := ex.Build()
				got, err := enumerator.ShortestAccepted(a, 25, enumerator.WithStrategy(s))
				require.NoError(t, err)
				require.NotEmpty(t, got)

				seen := make(map[string]bool, len(got))
				for i, str := range got {
					assert.False(t, seen[str], "duplicate %q", str)
					seen[str] = true

					if i > 0 {
						prev := got[i-1]
						assert.LessOrEqual(t, len(prev), len(str), "length order at %d", i)
						if len(prev) == len(str) {
							assert.Less(t, prev, str, "alphabet order at %d", i)
						}
					}

					res, err := evaluator.Evaluate(a, str)
					require.NoError(t, err)
					assert.True(t, res.Accepted, "%q must be accepted", str)
				}
			})
		}
	}
}

func TestShortestAccepted_DefaultLimit(t *testing.T) {
	got, err := enumerator.ShortestAccepted(catalog.BinaryEndingWithOne(), 0)
	require.NoError(t, err)
	assert.Len(t, got, enumerator.DefaultLimit)
}

func TestShortestAccepted_EmptyString(t *testing.T) {
	a := catalog.EvenLength()

	got, err := enumerator.ShortestAccepted(a, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"aa", "ab", "aaaa"}, got)

	got, err = enumerator.ShortestAccepted(a, 3, enumerator.WithEmptyString(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"", "aa", "ab"}, got)

	got, err = enumerator.ShortestAccepted(a, 4, enumerator.WithEmptyString(true), enumerator.WithStrategy(enumerator.Shortlex))
	require.NoError(t, err)
	assert.Equal(t, []string{"", "aa", "ab", "ba"}, got)

	got, err = enumerator.ShortestAccepted(catalog.ContainsAB(), 1, enumerator.WithEmptyString(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"ab"}, got, "the flag only matters when q0 accepts")
}

func TestEnumerate_FiniteLanguage(t *testing.T) {
	for _, s := range strategies {
		t.Run(s.String(), func(t *testing.T) {
			res, err := enumerator.Enumerate(context.Background(), singleSymbol(t), 10, enumerator.WithStrategy(s))
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, res.Strings)
			assert.True(t, res.Exhausted)
		})
	}
}

func TestEnumerate_NoAcceptingStates(t *testing.T) {
	a := catalog.BinaryEndingWithOne()
	require.NoError(t, a.RemoveAcceptingState("q1"))

	for _, s := range strategies {
		t.Run(s.String(), func(t *testing.T) {
			res, err := enumerator.Enumerate(context.Background(), a, 10, enumerator.WithStrategy(s))
			require.NoError(t, err)
			assert.Empty(t, res.Strings)
			assert.NotNil(t, res.Strings)
			assert.True(t, res.Exhausted)
		})
	}
}

func TestEnumerate_MaxLength(t *testing.T) {
	for _, s := range strategies {
		t.Run(s.String(), func(t *testing.T) {
			res, err := enumerator.Enumerate(context.Background(), catalog.BinaryEndingWithOne(), 10,
				enumerator.WithMaxLength(1), enumerator.WithStrategy(s))
			require.NoError(t, err)
			assert.Equal(t, []string{"1"}, res.Strings)
			assert.True(t, res.Exhausted)
			assert.Equal(t, 1, res.Depth)
		})
	}
}

func TestEnumerate_Preconditions(t *testing.T) {
	a := catalog.EndingWith01()
	require.NoError(t, a.RemoveTransition("q2", "0"))

	_, err := enumerator.ShortestAccepted(a, 3)
	assert.ErrorIs(t, err, domain.ErrNotComplete)
}

func TestEnumerate_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := enumerator.Enumerate(ctx, catalog.ContainsAB(), 3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEnumerate_Hook(t *testing.T) {
	var got *domain.EnumerationEvent
	hooks := domain.LifecycleHooks{
		OnEnumeration: func(_ context.Context, e *domain.EnumerationEvent) { got = e },
	}

	_, err := enumerator.Enumerate(context.Background(), singleSymbol(t), 4, enumerator.WithLifecycleHooks(hooks))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 4, got.Limit)
	assert.Equal(t, 2, got.Found)
	assert.True(t, got.Exhausted)
}

func TestParseStrategy(t *testing.T) {
	s, err := enumerator.ParseStrategy("shortlex")
	require.NoError(t, err)
	assert.Equal(t, enumerator.Shortlex, s)

	s, err = enumerator.ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, enumerator.Pruned, s)

	_, err = enumerator.ParseStrategy("dfs")
	assert.Error(t, err)
}
