package evaluator

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/validation"
)

// Result is the outcome of running one input.
type Result struct {
	Input    string        `json:"input"`
	Accepted bool          `json:"accepted"`
	Final    string        `json:"final_state"`
	Trace    []domain.Step `json:"trace"`
}

// Evaluator simulates inputs and reports every step to its hooks.
type Evaluator struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger used for debug traces.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers OnStep and OnVerdict callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Evaluator) {
		e.hooks = hooks
	}
}

// New creates an Evaluator. Without options it is silent.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e
}

var silent = New()

// Evaluate runs input through a using a silent Evaluator.
func Evaluate(a *domain.Automaton, input string) (Result, error) {
	return silent.Evaluate(context.Background(), a, input)
}

// CheckInput reports the first rune of input that is not in the alphabet.
func CheckInput(a *domain.Automaton, input string) error {
	pos := 0
	for _, r := range input {
		if sym := string(r); !a.HasSymbol(sym) {
			return &domain.SymbolError{Symbol: sym, Position: pos}
		}
		pos++
	}
	return nil
}

// Evaluate runs input through a. Each rune of input is one symbol.
func (e *Evaluator) Evaluate(ctx context.Context, a *domain.Automaton, input string) (Result, error) {
	if err := validation.Require(a); err != nil {
		return Result{}, err
	}
	if err := CheckInput(a, input); err != nil {
		return Result{}, err
	}

	current, _ := a.InitialState()
	trace := make([]domain.Step, 0, len(input))
	for _, r := range input {
		sym := string(r)
		next, _ := a.Next(current, sym)
		step := domain.Step{From: current, Symbol: sym, To: next}
		trace = append(trace, step)
		if e.hooks.OnStep != nil {
			e.hooks.OnStep(ctx, &domain.StepEvent{Index: len(trace) - 1, Step: step})
		}
		current = next
	}

	res := Result{
		Input:    input,
		Accepted: a.IsAccepting(current),
		Final:    current,
		Trace:    trace,
	}
	e.logger.Debug("input evaluated", "input", input, "final", current, "accepted", res.Accepted, "steps", len(trace))
	if e.hooks.OnVerdict != nil {
		e.hooks.OnVerdict(ctx, &domain.VerdictEvent{
			Input:    input,
			Final:    current,
			Accepted: res.Accepted,
			Steps:    len(trace),
		})
	}
	return res, nil
}
