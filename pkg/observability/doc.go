/*
Package observability provides lifecycle hooks for auditing evaluations and
enumerations.

LoggingHooks writes every event to a slog logger; Chain fans events out to
several hook sets, e.g. logging plus the Prometheus hooks of the HTTP adapter:

	hooks := observability.Chain(
		metrics.Hooks(),
		observability.LoggingHooks(logger),
	)
	wb := automata.New(automata.WithLifecycleHooks(hooks))
*/
package observability
