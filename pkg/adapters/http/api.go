package http

import (
	"encoding/json"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/validation"
)

// ModelRequest carries a detached automaton document.
type ModelRequest struct {
	Automaton json.RawMessage `json:"automaton"`
}

// EvaluateRequest is the body of the evaluate endpoints. Automaton is only
// read by the stateless endpoint.
type EvaluateRequest struct {
	Automaton json.RawMessage `json:"automaton,omitempty"`
	Input     string          `json:"input"`
}

// EnumerateRequest is the body of the enumerate endpoints.
type EnumerateRequest struct {
	Automaton    json.RawMessage `json:"automaton,omitempty"`
	Limit        int             `json:"limit,omitempty"`
	IncludeEmpty *bool           `json:"include_empty,omitempty"`
	MaxLength    int             `json:"max_length,omitempty"`
	Strategy     string          `json:"strategy,omitempty"`
}

// CreateRequest is the body of POST /automata. A missing automaton creates an
// empty one.
type CreateRequest struct {
	Name      string          `json:"name"`
	Automaton json.RawMessage `json:"automaton,omitempty"`
}

// FindingResponse is a validation finding with its rendered message.
type FindingResponse struct {
	validation.Finding
	Message string `json:"message"`
}

// DiagnosticsResponse is returned by the validate and diagnostics endpoints.
type DiagnosticsResponse struct {
	Complete bool               `json:"complete"`
	Findings []FindingResponse  `json:"findings"`
	Omitted  int                `json:"omitted,omitempty"`
	Summary  validation.Summary `json:"summary"`

	// Unreachable lists states no input leads to. They do not affect Complete.
	Unreachable []string `json:"unreachable"`
}

// ListResponse is returned by GET /automata.
type ListResponse struct {
	Automata []string `json:"automata"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newDiagnostics(a *domain.Automaton) DiagnosticsResponse {
	report := validation.Diagnose(a)
	findings := make([]FindingResponse, 0, len(report.Findings))
	for _, f := range report.Findings {
		findings = append(findings, FindingResponse{Finding: f, Message: f.Message()})
	}
	return DiagnosticsResponse{
		Complete: report.Complete(),
		Findings: findings,
		Omitted:  report.Omitted,
		Summary:  validation.Summarize(a),

		Unreachable: validation.Unreachable(a),
	}
}
