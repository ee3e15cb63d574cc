/*
Package codec converts automata to and from their persisted document form.

A document carries the five components of the automaton:

	{
	  "states": ["q0", "q1"],
	  "alphabet": ["0", "1"],
	  "initial_state": "q0",
	  "accepting_states": ["q1"],
	  "transitions": [
	    {"from_state": "q0", "symbol": "0", "to_state": "q0"},
	    ...
	  ]
	}

Encoding always writes the list form of "transitions". Decoding also accepts
the legacy mapping form {"<from>,<symbol>": "<to>"}, splitting each key at its
last comma so state names may contain commas. "initial_state" may be null or
absent; the other four fields are required.

Documents are applied to a fresh automaton in construction order (states,
alphabet, initial state, accepting states, transitions) through the regular
mutators, so every referential integrity check runs on load. Any failure is
reported as a *FormatError matching domain.ErrFormat.
*/
package codec
