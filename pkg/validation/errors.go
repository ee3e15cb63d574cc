package validation

import (
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
)

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
	// Omitted counts missing transitions left out by a WithMissingLimit cap.
	Omitted int
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 && e.Omitted == 0 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors)+e.Omitted)
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	if e.Omitted > 0 {
		msg += fmt.Sprintf("  ... and %d more missing transitions\n", e.Omitted)
	}
	return msg
}

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	if aggr, ok := err.(*AggregateError); ok {
		return aggr.Errors
	}
	return nil
}

// IncompleteError is returned by Require. It matches domain.ErrNotComplete
// and carries the full diagnostic report.
type IncompleteError struct {
	Report Report
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%v: %v", domain.ErrNotComplete, e.Report.Err())
}

func (e *IncompleteError) Unwrap() error { return domain.ErrNotComplete }
