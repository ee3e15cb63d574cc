/*
Package domain contains the deterministic finite automaton model.

An Automaton holds the five components of the formal definition and the
mutators that keep them referentially consistent. The package is pure: no
I/O, no logging and no dependencies outside the standard library, so every
other layer (validation, evaluation, persistence, adapters) can build on it.

# Key Entities

  - Automaton: the 5-tuple (Q, Σ, δ, q₀, F) with cascading removals.
  - Transition / Step: a δ entry and a recorded move of a simulation.
  - Edit: a scripted mutation, applied all-or-nothing with ApplyEdits.
  - LifecycleHooks: callbacks fired by the evaluator and enumerator.
*/
package domain
