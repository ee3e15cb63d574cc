package enumerator

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/automata/pkg/domain"
)

// DefaultLimit is used when the requested limit is not positive.
const DefaultLimit = 10

// Strategy selects the search algorithm.
type Strategy int

const (
	// Pruned expands one prefix per (state, length).
	Pruned Strategy = iota
	// Shortlex reports the true shortlex-first accepted strings.
	Shortlex
)

func (s Strategy) String() string {
	switch s {
	case Pruned:
		return "pruned"
	case Shortlex:
		return "shortlex"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps a strategy name to its value. The empty string selects Pruned.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "", "pruned":
		return Pruned, nil
	case "shortlex":
		return Shortlex, nil
	default:
		return Pruned, fmt.Errorf("unknown enumeration strategy %q (want pruned or shortlex)", name)
	}
}

// Option configures an enumeration.
type Option func(*config)

type config struct {
	includeEmpty bool
	maxLength    int
	strategy     Strategy
	logger       *slog.Logger
	hooks        domain.LifecycleHooks
}

// WithEmptyString makes "" eligible when q₀ is accepting. Excluded by default.
func WithEmptyString(include bool) Option {
	return func(c *config) {
		c.includeEmpty = include
	}
}

// WithMaxLength caps the length of reported strings. n <= 0 means no cap.
func WithMaxLength(n int) Option {
	return func(c *config) {
		c.maxLength = n
	}
}

// WithStrategy selects the search algorithm.
func WithStrategy(s Strategy) Option {
	return func(c *config) {
		c.strategy = s
	}
}

// WithLogger sets the logger used for debug traces.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithLifecycleHooks registers the OnEnumeration callback.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *config) {
		c.hooks = hooks
	}
}

func newConfig(opts []Option) config {
	c := config{}
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}
