package main

import (
	"context"
	"fmt"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/adapters/redis"
	"github.com/aretw0/automata/pkg/codec"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/enumerator"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/aretw0/automata/pkg/ports"
)

// backend is the store selected by the configuration.
type backend struct {
	store  ports.AutomatonStore
	locker ports.Locker
	close  func() error
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		return &backend{store: memory.NewStore(), locker: memory.NewLocker(), close: func() error { return nil }}, nil

	case config.DriverRedis:
		r := cfg.Store.Redis
		store := redis.New(r.Addr, r.Password, r.DB, redis.WithPrefix(r.Prefix), redis.WithTTL(r.TTL))
		if err := store.Ping(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to reach redis at %s: %w", r.Addr, err)
		}
		return &backend{
			store:  store,
			locker: redis.NewLocker(store.Client(), r.Prefix),
			close:  store.Close,
		}, nil

	default:
		format, err := codec.ParseFormat(cfg.Store.Format)
		if err != nil {
			return nil, err
		}
		return &backend{
			store:  file.New(cfg.Store.Dir, file.WithFormat(format)),
			locker: memory.NewLocker(),
			close:  func() error { return nil },
		}, nil
	}
}

// newWorkbench wires the configured backend into a Workbench. The caller
// must call the returned close function.
func newWorkbench(ctx context.Context, opts ...automata.Option) (*automata.Workbench, func() error, error) {
	b, err := openBackend(ctx, app.cfg)
	if err != nil {
		return nil, nil, err
	}
	defaults, err := enumerateDefaults(app.cfg)
	if err != nil {
		b.close()
		return nil, nil, err
	}

	all := []automata.Option{
		automata.WithStore(b.store),
		automata.WithLocker(b.locker),
		automata.WithLogger(app.logger),
		automata.WithLifecycleHooks(observability.LoggingHooks(app.logger)),
		automata.WithEnumerateDefaults(app.cfg.Enumerate.Limit, defaults...),
	}
	all = append(all, opts...)
	return automata.New(all...), b.close, nil
}

func enumerateDefaults(cfg *config.Config) ([]enumerator.Option, error) {
	strategy, err := enumerator.ParseStrategy(cfg.Enumerate.Strategy)
	if err != nil {
		return nil, err
	}
	opts := []enumerator.Option{
		enumerator.WithStrategy(strategy),
		enumerator.WithEmptyString(cfg.Enumerate.IncludeEmpty),
	}
	if cfg.Enumerate.MaxLength > 0 {
		opts = append(opts, enumerator.WithMaxLength(cfg.Enumerate.MaxLength))
	}
	return opts, nil
}

// loadModel reads an automaton document, picking the format from the extension.
func loadModel(path string) (*domain.Automaton, error) {
	a, err := codec.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return a, nil
}
