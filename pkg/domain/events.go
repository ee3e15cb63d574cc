package domain

import (
	"context"
)

// StepEvent is emitted for every transition taken while evaluating an input.
type StepEvent struct {
	Index int
	Step  Step
}

// VerdictEvent is emitted once an input has been fully consumed.
type VerdictEvent struct {
	Input    string
	Final    string
	Accepted bool
	Steps    int
}

// EnumerationEvent is emitted when an enumeration finishes.
type EnumerationEvent struct {
	Limit     int
	Found     int
	MaxLength int
	Exhausted bool
}

// LifecycleHooks defines callbacks for observability of the algorithms.
// Any hook may be nil.
type LifecycleHooks struct {
	OnStep        func(context.Context, *StepEvent)
	OnVerdict     func(context.Context, *VerdictEvent)
	OnEnumeration func(context.Context, *EnumerationEvent)
}
