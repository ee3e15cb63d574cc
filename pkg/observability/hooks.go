package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/automata/pkg/domain"
)

// LoggingHooks logs steps at Debug and verdicts and enumerations at Info.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step",
				"index", e.Index,
				"from", e.Step.From,
				"symbol", e.Step.Symbol,
				"to", e.Step.To,
			)
		},
		OnVerdict: func(ctx context.Context, e *domain.VerdictEvent) {
			logger.InfoContext(ctx, "verdict",
				"input_len", len(e.Input),
				"final_state", e.Final,
				"accepted", e.Accepted,
				"steps", e.Steps,
			)
		},
		OnEnumeration: func(ctx context.Context, e *domain.EnumerationEvent) {
			logger.InfoContext(ctx, "enumeration",
				"limit", e.Limit,
				"found", e.Found,
				"max_length", e.MaxLength,
				"exhausted", e.Exhausted,
			)
		},
	}
}

// Chain calls every non-nil callback of each hook set, in order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range sets {
		if h.OnStep != nil {
			prev, next := out.OnStep, h.OnStep
			out.OnStep = func(ctx context.Context, e *domain.StepEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				next(ctx, e)
			}
		}
		if h.OnVerdict != nil {
			prev, next := out.OnVerdict, h.OnVerdict
			out.OnVerdict = func(ctx context.Context, e *domain.VerdictEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				next(ctx, e)
			}
		}
		if h.OnEnumeration != nil {
			prev, next := out.OnEnumeration, h.OnEnumeration
			out.OnEnumeration = func(ctx context.Context, e *domain.EnumerationEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				next(ctx, e)
			}
		}
	}
	return out
}
