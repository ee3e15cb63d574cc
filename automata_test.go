package automata_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/aretw0/automata/pkg/catalog"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/enumerator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkbench_Lifecycle(t *testing.T) {
	ctx := context.Background()
	wb := automata.New()

	require.NoError(t, wb.Create(ctx, "binary", catalog.BinaryEndingWithOne()))
	err := wb.Create(ctx, "binary", nil)
	assert.ErrorIs(t, err, domain.ErrAutomatonExists)

	names, err := wb.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"binary"}, names)

	res, err := wb.Evaluate(ctx, "binary", "101")
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Len(t, res.Trace, 3)

	words, err := wb.Enumerate(ctx, "binary", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "01", "10"}, words.Strings)

	report, err := wb.Diagnose(ctx, "binary")
	require.NoError(t, err)
	assert.True(t, report.Complete())

	require.NoError(t, wb.Delete(ctx, "binary"))
	assert.ErrorIs(t, wb.Delete(ctx, "binary"), domain.ErrAutomatonNotFound)
	_, err = wb.Evaluate(ctx, "binary", "1")
	assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)
}

func TestWorkbench_CreateEmpty(t *testing.T) {
	ctx := context.Background()
	wb := automata.New()

	require.NoError(t, wb.Create(ctx, "blank", nil))
	a, err := wb.Get(ctx, "blank")
	require.NoError(t, err)
	assert.True(t, domain.New().Equal(a))

	_, err = wb.Evaluate(ctx, "blank", "")
	assert.ErrorIs(t, err, domain.ErrNotComplete)

	assert.ErrorIs(t, wb.Create(ctx, "../etc", nil), domain.ErrInvalidName)
}

func TestWorkbench_PutNil(t *testing.T) {
	ctx := context.Background()
	wb := automata.New()

	require.NoError(t, wb.Create(ctx, "binary", catalog.BinaryEndingWithOne()))
	require.NoError(t, wb.Put(ctx, "binary", nil))

	a, err := wb.Get(ctx, "binary")
	require.NoError(t, err)
	assert.True(t, domain.New().Equal(a))
}

func TestWorkbench_EditIsAtomic(t *testing.T) {
	ctx := context.Background()
	wb := automata.New()
	require.NoError(t, wb.Create(ctx, "m", nil))

	_, err := wb.Edit(ctx, "m", []domain.Edit{
		{Op: domain.OpAddState, State: "q0"},
		{Op: domain.OpAddTransition, From: "q0", Symbol: "a", To: "q0"},
	})
	var editErr *domain.EditError
	require.True(t, errors.As(err, &editErr))
	assert.Equal(t, 1, editErr.Index)

	a, err := wb.Get(ctx, "m")
	require.NoError(t, err)
	assert.Zero(t, a.NumStates(), "a failed script must not be saved")

	got, err := wb.Edit(ctx, "m", []domain.Edit{
		{Op: domain.OpAddState, State: "q0"},
		{Op: domain.OpAddSymbol, Symbol: "a"},
		{Op: domain.OpSetInitial, State: "q0"},
		{Op: domain.OpAddAccepting, State: "q0"},
		{Op: domain.OpAddTransition, From: "q0", Symbol: "a", To: "q0"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, got.NumTransitions())

	res, err := wb.Evaluate(ctx, "m", "aaa")
	require.NoError(t, err)
	assert.True(t, res.Accepted)
}

func TestWorkbench_ConcurrentEdits(t *testing.T) {
	ctx := context.Background()
	wb := automata.New()
	require.NoError(t, wb.Create(ctx, "m", nil))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := wb.Edit(ctx, "m", []domain.Edit{
				{Op: domain.OpAddState, State: "s" + string(rune('a'+i))},
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	a, err := wb.Get(ctx, "m")
	require.NoError(t, err)
	assert.Equal(t, 20, a.NumStates(), "no edit may be lost")
}

func TestWorkbench_EnumerateDefaults(t *testing.T) {
	ctx := context.Background()
	wb := automata.New(automata.WithEnumerateDefaults(2, enumerator.WithEmptyString(true)))

	res, err := wb.EnumerateModel(ctx, catalog.EvenLength(), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "aa"}, res.Strings)

	res, err = wb.EnumerateModel(ctx, catalog.EvenLength(), 2, enumerator.WithEmptyString(false))
	require.NoError(t, err)
	assert.Equal(t, []string{"aa", "ab"}, res.Strings, "caller options override defaults")
}

func TestWorkbench_Hooks(t *testing.T) {
	ctx := context.Background()
	var verdicts, enumerations int
	wb := automata.New(automata.WithLifecycleHooks(domain.LifecycleHooks{
		OnVerdict:     func(context.Context, *domain.VerdictEvent) { verdicts++ },
		OnEnumeration: func(context.Context, *domain.EnumerationEvent) { enumerations++ },
	}))

	_, err := wb.EvaluateModel(ctx, catalog.ContainsAB(), "ab")
	require.NoError(t, err)
	_, err = wb.EnumerateModel(ctx, catalog.ContainsAB(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, verdicts)
	assert.Equal(t, 1, enumerations)
}

func TestWorkbench_FileStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	wb := automata.New(automata.WithStore(file.New(dir)))
	require.NoError(t, wb.Put(ctx, "two", catalog.ExactlyTwoAs()))

	// A second workbench over the same directory sees the same data.
	other := automata.New(automata.WithStore(file.New(dir)))
	res, err := other.Evaluate(ctx, "two", "baba")
	require.NoError(t, err)
	assert.True(t, res.Accepted)
}
