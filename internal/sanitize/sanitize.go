// Package sanitize checks strings that arrive from untrusted front ends
// before they reach the evaluator.
package sanitize

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// DefaultMaxInputSize is 64KB.
const DefaultMaxInputSize = 64 * 1024

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// Input enforces a size limit in bytes and validates UTF-8. A limit <= 0
// means DefaultMaxInputSize.
//
// The input is never rewritten: characters outside the alphabet, control
// characters included, are left for the evaluator to report.
func Input(input string, limit int) error {
	if limit <= 0 {
		limit = DefaultMaxInputSize
	}
	if len(input) > limit {
		return fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return ErrInvalidUTF8
	}
	return nil
}
