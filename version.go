package automata

// Version is the release of the module, reported by the CLI and the servers.
const Version = "0.1.0"
