package automata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/enumerator"
	"github.com/aretw0/automata/pkg/evaluator"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/validation"
)

// DefaultLockTTL bounds how long a distributed edit lock may be held.
const DefaultLockTTL = 30 * time.Second

// Workbench is the high-level entry point of the library.
// It operates on automata kept in a store and on detached models.
type Workbench struct {
	store     ports.AutomatonStore
	locker    ports.Locker
	logger    *slog.Logger
	hooks     domain.LifecycleHooks
	enumLimit int
	enumOpts  []enumerator.Option
	lockTTL   time.Duration
	evaluator *evaluator.Evaluator
}

// Option defines a functional option for configuring the Workbench.
type Option func(*Workbench)

// WithStore sets the backing store (default: in-memory).
func WithStore(store ports.AutomatonStore) Option {
	return func(w *Workbench) {
		w.store = store
	}
}

// WithLocker sets the lock used to serialize edits (default: in-process).
func WithLocker(locker ports.Locker) Option {
	return func(w *Workbench) {
		w.locker = locker
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workbench) {
		w.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks for evaluations and enumerations.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(w *Workbench) {
		w.hooks = hooks
	}
}

// WithEnumerateDefaults sets the limit used when a caller passes limit <= 0,
// and options applied before the caller's own.
func WithEnumerateDefaults(limit int, opts ...enumerator.Option) Option {
	return func(w *Workbench) {
		w.enumLimit = limit
		w.enumOpts = opts
	}
}

// WithLockTTL sets the expiry passed to the locker.
func WithLockTTL(ttl time.Duration) Option {
	return func(w *Workbench) {
		w.lockTTL = ttl
	}
}

// New creates a Workbench.
func New(opts ...Option) *Workbench {
	w := &Workbench{
		enumLimit: enumerator.DefaultLimit,
		lockTTL:   DefaultLockTTL,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.store == nil {
		w.store = memory.NewStore()
	}
	if w.locker == nil {
		w.locker = memory.NewLocker()
	}
	if w.logger == nil {
		w.logger = logging.NewNop()
	}
	w.evaluator = evaluator.New(
		evaluator.WithLogger(w.logger),
		evaluator.WithLifecycleHooks(w.hooks),
	)
	return w
}

// Store returns the underlying store.
func (w *Workbench) Store() ports.AutomatonStore {
	return w.store
}

// withLock runs fn while holding the lock for name.
func (w *Workbench) withLock(ctx context.Context, name string, fn func(context.Context) error) error {
	unlock, err := w.locker.Lock(ctx, name, w.lockTTL)
	if err != nil {
		return fmt.Errorf("failed to acquire lock for %s: %w", name, err)
	}
	defer func() {
		if err := unlock(ctx); err != nil {
			w.logger.Warn("Failed to release lock (will expire via TTL)",
				"automaton", name,
				"err", err,
			)
		}
	}()
	return fn(ctx)
}

// Create stores a under a new name. A nil a creates an empty automaton.
func (w *Workbench) Create(ctx context.Context, name string, a *domain.Automaton) error {
	if err := domain.ValidateName(name); err != nil {
		return err
	}
	if a == nil {
		a = domain.New()
	}
	return w.withLock(ctx, name, func(ctx context.Context) error {
		_, err := w.store.Load(ctx, name)
		switch {
		case err == nil:
			return fmt.Errorf("%w: %s", domain.ErrAutomatonExists, name)
		case !errors.Is(err, domain.ErrAutomatonNotFound):
			return err
		}
		if err := w.store.Save(ctx, name, a); err != nil {
			return err
		}
		w.logger.Info("automaton created", "automaton", name)
		return nil
	})
}

// Get loads a copy of the named automaton.
func (w *Workbench) Get(ctx context.Context, name string) (*domain.Automaton, error) {
	return w.store.Load(ctx, name)
}

// Put stores a under name, replacing any previous value. A nil automaton
// stores an empty one.
func (w *Workbench) Put(ctx context.Context, name string, a *domain.Automaton) error {
	if err := domain.ValidateName(name); err != nil {
		return err
	}
	if a == nil {
		a = domain.New()
	}
	return w.withLock(ctx, name, func(ctx context.Context) error {
		return w.store.Save(ctx, name, a)
	})
}

// Delete removes the named automaton. It fails with
// domain.ErrAutomatonNotFound when there is nothing to delete.
func (w *Workbench) Delete(ctx context.Context, name string) error {
	return w.withLock(ctx, name, func(ctx context.Context) error {
		if _, err := w.store.Load(ctx, name); err != nil {
			return err
		}
		if err := w.store.Delete(ctx, name); err != nil {
			return err
		}
		w.logger.Info("automaton deleted", "automaton", name)
		return nil
	})
}

// List returns the stored names.
func (w *Workbench) List(ctx context.Context) ([]string, error) {
	return w.store.List(ctx)
}

// Edit applies an edit script to the named automaton under its lock.
// The script is all-or-nothing: on failure nothing is saved.
func (w *Workbench) Edit(ctx context.Context, name string, edits []domain.Edit) (*domain.Automaton, error) {
	var result *domain.Automaton
	err := w.withLock(ctx, name, func(ctx context.Context) error {
		current, err := w.store.Load(ctx, name)
		if err != nil {
			return err
		}
		next, err := current.ApplyEdits(edits)
		if err != nil {
			return err
		}
		if err := w.store.Save(ctx, name, next); err != nil {
			return err
		}
		result = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	w.logger.Debug("automaton edited", "automaton", name, "edits", len(edits))
	return result, nil
}

// Evaluate runs input through the named automaton.
func (w *Workbench) Evaluate(ctx context.Context, name, input string) (evaluator.Result, error) {
	a, err := w.store.Load(ctx, name)
	if err != nil {
		return evaluator.Result{}, err
	}
	return w.evaluator.Evaluate(ctx, a, input)
}

// EvaluateModel runs input through a detached automaton.
func (w *Workbench) EvaluateModel(ctx context.Context, a *domain.Automaton, input string) (evaluator.Result, error) {
	return w.evaluator.Evaluate(ctx, a, input)
}

// Enumerate lists the shortest strings accepted by the named automaton.
func (w *Workbench) Enumerate(ctx context.Context, name string, limit int, opts ...enumerator.Option) (enumerator.Result, error) {
	a, err := w.store.Load(ctx, name)
	if err != nil {
		return enumerator.Result{}, err
	}
	return w.EnumerateModel(ctx, a, limit, opts...)
}

// EnumerateModel lists the shortest strings accepted by a detached automaton.
func (w *Workbench) EnumerateModel(ctx context.Context, a *domain.Automaton, limit int, opts ...enumerator.Option) (enumerator.Result, error) {
	if limit <= 0 {
		limit = w.enumLimit
	}
	all := make([]enumerator.Option, 0, len(w.enumOpts)+len(opts)+2)
	all = append(all, enumerator.WithLogger(w.logger), enumerator.WithLifecycleHooks(w.hooks))
	all = append(all, w.enumOpts...)
	all = append(all, opts...)
	return enumerator.Enumerate(ctx, a, limit, all...)
}

// Diagnose reports every completeness problem of the named automaton.
func (w *Workbench) Diagnose(ctx context.Context, name string, opts ...validation.Option) (validation.Report, error) {
	a, err := w.store.Load(ctx, name)
	if err != nil {
		return validation.Report{}, err
	}
	return validation.Diagnose(a, opts...), nil
}
