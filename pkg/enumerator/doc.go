/*
Package enumerator lists the shortest strings accepted by a complete DFA.

The default Pruned strategy is a breadth-first search over (state, prefix)
pairs seeded with ("", q₀). Only the first prefix of a given length that
reaches a state is expanded further, which keeps every layer at most |Q|
entries wide. Every accepted child of an expanded prefix is still reported,
so results are ordered by length and then by the sorted alphabet, never
contain duplicates, and all evaluate to accepted.

The Shortlex strategy drops the pruning and reports exactly the first
accepted strings in shortlex order. It precomputes, for each length k, the
set of states from which some string of length k reaches an accepting state,
and only descends into prefixes that can still be completed.

Both strategies stop once the requested number of strings is found. When an
automaton has no (further) accepted strings the search notices that the
sequence of layer sets has started to repeat without producing anything and
reports the enumeration as exhausted:

	res, err := enumerator.Enumerate(ctx, a, 10, enumerator.WithEmptyString(true))
	if err != nil {
	    return err
	}
	if res.Exhausted {
	    fmt.Println("the language is finite")
	}
*/
package enumerator
