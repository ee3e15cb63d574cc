package enumerator

import (
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/validation"
)

// Result is the outcome of Enumerate.
type Result struct {
	Strings []string `json:"strings"`
	// Depth is the longest prefix length explored.
	Depth int `json:"depth"`
	// Exhausted is set when fewer strings than requested exist, either at
	// all or within the configured maximum length.
	Exhausted bool `json:"exhausted"`
}

// ShortestAccepted returns up to limit accepted strings, shortest first.
// limit <= 0 selects DefaultLimit.
func ShortestAccepted(a *domain.Automaton, limit int, opts ...Option) ([]string, error) {
	res, err := Enumerate(context.Background(), a, limit, opts...)
	if err != nil {
		return nil, err
	}
	return res.Strings, nil
}

// Enumerate is ShortestAccepted with cancellation and search metadata.
func Enumerate(ctx context.Context, a *domain.Automaton, limit int, opts ...Option) (Result, error) {
	if err := validation.Require(a); err != nil {
		return Result{}, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	cfg := newConfig(opts)

	s := &search{a: a, alphabet: a.Alphabet(), limit: limit, cfg: cfg, found: []string{}}
	var err error
	switch cfg.strategy {
	case Shortlex:
		err = s.shortlex(ctx)
	default:
		err = s.pruned(ctx)
	}
	if err != nil {
		return Result{}, err
	}

	res := Result{Strings: s.found, Depth: s.depth, Exhausted: len(s.found) < limit}
	cfg.logger.Debug("enumeration finished",
		"strategy", cfg.strategy,
		"limit", limit,
		"found", len(res.Strings),
		"depth", res.Depth,
		"exhausted", res.Exhausted,
	)
	if cfg.hooks.OnEnumeration != nil {
		cfg.hooks.OnEnumeration(ctx, &domain.EnumerationEvent{
			Limit:     limit,
			Found:     len(res.Strings),
			MaxLength: res.Depth,
			Exhausted: res.Exhausted,
		})
	}
	return res, nil
}

type search struct {
	a        *domain.Automaton
	alphabet []string
	limit    int
	cfg      config
	found    []string
	depth    int
}

// emit records an accepted string and reports whether the limit is reached.
func (s *search) emit(str string) bool {
	s.found = append(s.found, str)
	return len(s.found) >= s.limit
}

func (s *search) withinCap(length int) bool {
	return s.cfg.maxLength <= 0 || length <= s.cfg.maxLength
}

type frontierEntry struct {
	state  string
	prefix string
}

func (s *search) pruned(ctx context.Context) error {
	initial, _ := s.a.InitialState()
	if s.cfg.includeEmpty && s.a.IsAccepting(initial) && s.emit("") {
		return nil
	}

	layer := []frontierEntry{{state: initial}}
	var cycle cycleDetector
	cycle.observe(initial, s.a.IsAccepting(initial))

	for depth := 1; s.withinCap(depth); depth++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.depth = depth

		next := make([]frontierEntry, 0, len(layer))
		visited := make(map[string]struct{}, len(layer))
		productive := false
		for _, e := range layer {
			for _, sym := range s.alphabet {
				to, _ := s.a.Next(e.state, sym)
				str := e.prefix + sym
				if s.a.IsAccepting(to) {
					productive = true
					if s.emit(str) {
						return nil
					}
				}
				if _, seen := visited[to]; !seen {
					visited[to] = struct{}{}
					next = append(next, frontierEntry{state: to, prefix: str})
				}
			}
		}
		layer = next

		if cycle.observe(setKey(visited), productive) {
			return nil
		}
	}
	return nil
}

func (s *search) shortlex(ctx context.Context) error {
	initial, _ := s.a.InitialState()
	states := s.a.States()

	// live[k] holds the states from which some string of length k is accepted.
	live := []map[string]struct{}{make(map[string]struct{})}
	for _, st := range s.a.AcceptingStates() {
		live[0][st] = struct{}{}
	}

	start := 1
	if s.cfg.includeEmpty {
		start = 0
	}

	var cycle cycleDetector
	for k := 0; s.withinCap(k); k++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if k > 0 {
			live = append(live, s.preimage(states, live[k-1]))
		}
		s.depth = k

		_, productive := live[k][initial]
		if productive && k >= start && s.complete(initial, k, "", live) {
			return nil
		}
		if cycle.observe(setKey(live[k]), productive) {
			return nil
		}
	}
	return nil
}

// complete emits every accepted string prefix+w with len(w) == remaining, in
// alphabet order. It reports whether the limit was reached.
func (s *search) complete(state string, remaining int, prefix string, live []map[string]struct{}) bool {
	if remaining == 0 {
		return s.emit(prefix)
	}
	for _, sym := range s.alphabet {
		to, _ := s.a.Next(state, sym)
		if _, ok := live[remaining-1][to]; !ok {
			continue
		}
		if s.complete(to, remaining-1, prefix+sym, live) {
			return true
		}
	}
	return false
}

func (s *search) preimage(states []string, target map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for _, st := range states {
		for _, sym := range s.alphabet {
			to, _ := s.a.Next(st, sym)
			if _, ok := target[to]; ok {
				out[st] = struct{}{}
				break
			}
		}
	}
	return out
}

// cycleDetector watches a deterministic sequence of state sets. Once a set
// repeats, the sequence is periodic from its first occurrence on.
type cycleDetector struct {
	seen       map[string]int
	productive []bool
}

// observe records the next set and reports true when it closes a cycle in
// which no set was productive, i.e. no further results can appear.
func (d *cycleDetector) observe(key string, productive bool) bool {
	if d.seen == nil {
		d.seen = make(map[string]int)
	}
	k := len(d.productive)
	d.productive = append(d.productive, productive)

	first, ok := d.seen[key]
	if !ok {
		d.seen[key] = k
		return false
	}
	return !slices.Contains(d.productive[first:k], true)
}

func setKey(set map[string]struct{}) string {
	return strings.Join(slices.Sorted(maps.Keys(set)), "\x1f")
}
