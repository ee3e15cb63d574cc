/*
Package ports defines the driven ports (interfaces) of the automata workbench.

These interfaces decouple the workbench from storage and coordination
backends.

# Key Interfaces

  - AutomatonStore: persists named automata (memory, file, Redis).
  - Locker: serializes edits of one named automaton, in process or across replicas.

RunAutomatonStoreContract is a reusable test suite every store adapter runs.
*/
package ports
