package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/automata/pkg/catalog"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/evaluator"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ev := evaluator.New(evaluator.WithLifecycleHooks(observability.LoggingHooks(logger)))
	_, err := ev.Evaluate(context.Background(), catalog.BinaryEndingWithOne(), "01")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "msg=step index=0 from=q0 symbol=0 to=q0")
	assert.Contains(t, out, "msg=step index=1 from=q0 symbol=1 to=q1")
	assert.Contains(t, out, "msg=verdict input_len=2 final_state=q1 accepted=true steps=2")
}

func TestChain(t *testing.T) {
	var order []string
	first := domain.LifecycleHooks{
		OnVerdict: func(context.Context, *domain.VerdictEvent) { order = append(order, "first") },
	}
	second := domain.LifecycleHooks{
		OnVerdict: func(context.Context, *domain.VerdictEvent) { order = append(order, "second") },
		OnStep:    func(context.Context, *domain.StepEvent) { order = append(order, "step") },
	}

	hooks := observability.Chain(first, domain.LifecycleHooks{}, second)
	assert.Nil(t, hooks.OnEnumeration)

	hooks.OnStep(context.Background(), &domain.StepEvent{})
	hooks.OnVerdict(context.Background(), &domain.VerdictEvent{})
	assert.Equal(t, []string{"step", "first", "second"}, order)
}
