// Package validation decides whether an automaton is a complete DFA.
//
// IsComplete is the cheap yes/no check used as a precondition by the
// evaluator and the enumerator. Diagnose performs the same checks but keeps
// going after the first problem and returns every finding, so a caller can
// report all of them at once:
//
//	report := validation.Diagnose(a, validation.WithMissingLimit(5))
//	for _, f := range report.Findings {
//	    fmt.Println(f.Message())
//	}
//	if report.Omitted > 0 {
//	    fmt.Printf("... and %d more\n", report.Omitted)
//	}
package validation
