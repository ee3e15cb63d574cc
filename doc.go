/*
Package automata is a workbench for defining and exercising deterministic
finite automata (DFAs).

A DFA is the 5-tuple (Q, Σ, δ, q₀, F). The model lives in pkg/domain and is
edited through mutators that keep it referentially consistent. On top of it
sit four algorithms:

  - validation: decides whether δ is total and lists every missing piece.
  - evaluator: runs an input string and returns the verdict and the trace.
  - enumerator: lists the shortest accepted strings.
  - codec: reads and writes the JSON/YAML document, including the legacy
    "<from>,<symbol>" transition encoding.

The Workbench type in this package ties them to a store of named automata,
serializing edits per name so HTTP, MCP and CLI front ends can share it.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/automata"
		"github.com/aretw0/automata/pkg/catalog"
	)

	func main() {
		ctx := context.Background()
		wb := automata.New()

		if err := wb.Create(ctx, "ab", catalog.ContainsAB()); err != nil {
			log.Fatal(err)
		}

		res, err := wb.Evaluate(ctx, "ab", "bab")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(res.Accepted) // true

		words, err := wb.Enumerate(ctx, "ab", 3)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(words.Strings) // [ab aab aba]
	}
*/
package automata
