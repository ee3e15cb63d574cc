package domain

// Transition is one entry of the transition function: δ(From, Symbol) = To.
type Transition struct {
	From   string `json:"from_state" yaml:"from_state" mapstructure:"from_state"`
	Symbol string `json:"symbol" yaml:"symbol" mapstructure:"symbol"`
	To     string `json:"to_state" yaml:"to_state" mapstructure:"to_state"`
}

// Key identifies the (state, symbol) pair a transition is defined for.
type Key struct {
	State  string
	Symbol string
}

// Step is a single move recorded while simulating an input string.
type Step struct {
	From   string `json:"from"`
	Symbol string `json:"symbol"`
	To     string `json:"to"`
}
