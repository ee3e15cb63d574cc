package validation

import (
	"github.com/aretw0/automata/pkg/domain"
)

// Reachable returns the states reachable from the initial state, in sorted
// order. Without an initial state nothing is reachable.
func Reachable(a *domain.Automaton) []string {
	initial, ok := a.InitialState()
	if !ok {
		return []string{}
	}
	visited := crawl(a, initial)
	out := make([]string, 0, len(visited))
	for _, s := range a.States() {
		if visited[s] {
			out = append(out, s)
		}
	}
	return out
}

// Unreachable returns the states no input can lead to, in sorted order.
// They do not make an automaton incomplete, but they never affect a verdict.
func Unreachable(a *domain.Automaton) []string {
	visited := map[string]bool{}
	if initial, ok := a.InitialState(); ok {
		visited = crawl(a, initial)
	}
	out := []string{}
	for _, s := range a.States() {
		if !visited[s] {
			out = append(out, s)
		}
	}
	return out
}

// crawl is a breadth-first search over defined transitions.
func crawl(a *domain.Automaton, start string) map[string]bool {
	alphabet := a.Alphabet()
	visited := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, sym := range alphabet {
			next, ok := a.Next(current, sym)
			if !ok || visited[next] {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	return visited
}
