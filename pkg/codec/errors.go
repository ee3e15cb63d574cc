package codec

import (
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
)

// FormatError reports a malformed document. It matches domain.ErrFormat and
// whatever caused it (a *domain.ReferenceError, a type mismatch, ...).
type FormatError struct {
	// Field is the offending top-level field, if known.
	Field string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %v", domain.ErrFormat, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", domain.ErrFormat, e.Field, e.Err)
}

func (e *FormatError) Unwrap() []error {
	return []error{domain.ErrFormat, e.Err}
}
