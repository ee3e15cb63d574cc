package mcp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/internal/sanitize"
	"github.com/aretw0/automata/pkg/catalog"
	"github.com/aretw0/automata/pkg/codec"
	"github.com/aretw0/automata/pkg/enumerator"
	"github.com/aretw0/automata/pkg/evaluator"
	"github.com/aretw0/automata/pkg/validation"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ListResponse is the result of list_automata.
type ListResponse struct {
	Automata []string `json:"automata" jsonschema_description:"Names of the stored automata"`
}

// DescribeResponse is the result of describe_automaton.
type DescribeResponse struct {
	Name     string             `json:"name" jsonschema_description:"Name of the automaton"`
	Document codec.Document     `json:"document" jsonschema_description:"The automaton definition"`
	Summary  validation.Summary `json:"summary" jsonschema_description:"Counts and completeness"`
	Markdown string             `json:"markdown" jsonschema_description:"Human readable description with the transition table"`
}

// ValidateResponse is the result of validate_automaton.
type ValidateResponse struct {
	Complete bool     `json:"complete" jsonschema_description:"Whether the automaton is a complete DFA"`
	Problems []string `json:"problems" jsonschema_description:"Every completeness problem found"`
	Omitted  int      `json:"omitted,omitempty" jsonschema_description:"Missing transitions not listed"`
}

// Server exposes a Workbench as an MCP Server.
type Server struct {
	wb           *automata.Workbench
	logger       *slog.Logger
	maxInputSize int
	mcpServer    *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger. It must not write to stdout when serving stdio.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMaxInputSize bounds evaluated inputs in bytes.
func WithMaxInputSize(n int) Option {
	return func(s *Server) {
		s.maxInputSize = n
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(wb *automata.Workbench, opts ...Option) *Server {
	s := &Server{
		wb:           wb,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxInputSize: sanitize.DefaultMaxInputSize,
		mcpServer:    server.NewMCPServer("automata-mcp", strings.TrimSpace(automata.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_automata",
		mcp.WithDescription("List the names of the stored automata."),
		mcp.WithOutputSchema[ListResponse](),
	), mcp.NewStructuredToolHandler(s.handleList))

	s.mcpServer.AddTool(mcp.NewTool("describe_automaton",
		mcp.WithDescription("Return the definition of a stored automaton: states, alphabet, initial state, accepting states and transitions."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name of the automaton")),
		mcp.WithOutputSchema[DescribeResponse](),
	), mcp.NewStructuredToolHandler(s.handleDescribe))

	s.mcpServer.AddTool(mcp.NewTool("validate_automaton",
		mcp.WithDescription("Check whether a stored automaton is a complete DFA and list every problem."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name of the automaton")),
		mcp.WithOutputSchema[ValidateResponse](),
	), mcp.NewStructuredToolHandler(s.handleValidate))

	s.mcpServer.AddTool(mcp.NewTool("evaluate_string",
		mcp.WithDescription("Run an input string through a stored automaton and return the verdict and the step-by-step trace."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name of the automaton")),
		mcp.WithString("input", mcp.Required(), mcp.Description("Input string; every character must belong to the alphabet")),
		mcp.WithOutputSchema[evaluator.Result](),
	), mcp.NewStructuredToolHandler(s.handleEvaluate))

	s.mcpServer.AddTool(mcp.NewTool("enumerate_accepted",
		mcp.WithDescription("List the shortest strings accepted by a stored automaton, shortest first."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name of the automaton")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of strings (default 10)")),
		mcp.WithBoolean("include_empty", mcp.Description("Report the empty string when the initial state accepts")),
		mcp.WithOutputSchema[enumerator.Result](),
	), mcp.NewStructuredToolHandler(s.handleEnumerate))

	s.mcpServer.AddTool(mcp.NewTool("create_from_example",
		mcp.WithDescription(fmt.Sprintf("Store a copy of a built-in example automaton. Examples: %s.", strings.Join(catalog.Names(), ", "))),
		mcp.WithString("example", mcp.Required(), mcp.Description("Example name")),
		mcp.WithString("name", mcp.Description("Name to store it under (defaults to the example name)")),
		mcp.WithOutputSchema[DescribeResponse](),
	), mcp.NewStructuredToolHandler(s.handleCreateFromExample))
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ListResponse, error) {
	names, err := s.wb.List(ctx)
	if err != nil {
		return ListResponse{}, fmt.Errorf("list failed: %w", err)
	}
	return ListResponse{Automata: names}, nil
}

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (DescribeResponse, error) {
	name, err := requireString(args, "name")
	if err != nil {
		return DescribeResponse{}, err
	}
	return s.describe(ctx, name)
}

func (s *Server) describe(ctx context.Context, name string) (DescribeResponse, error) {
	a, err := s.wb.Get(ctx, name)
	if err != nil {
		return DescribeResponse{}, fmt.Errorf("describe failed: %w", err)
	}
	return DescribeResponse{
		Name:     name,
		Document: codec.Encode(a),
		Summary:  validation.Summarize(a),
		Markdown: tui.SummaryMarkdown(name, a, validation.Diagnose(a)),
	}, nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ValidateResponse, error) {
	name, err := requireString(args, "name")
	if err != nil {
		return ValidateResponse{}, err
	}
	report, err := s.wb.Diagnose(ctx, name)
	if err != nil {
		return ValidateResponse{}, fmt.Errorf("validate failed: %w", err)
	}
	problems := make([]string, 0, len(report.Findings))
	for _, f := range report.Findings {
		problems = append(problems, f.Message())
	}
	return ValidateResponse{
		Complete: report.Complete(),
		Problems: problems,
		Omitted:  report.Omitted,
	}, nil
}

func (s *Server) handleEvaluate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (evaluator.Result, error) {
	name, err := requireString(args, "name")
	if err != nil {
		return evaluator.Result{}, err
	}
	// An empty input is legal, so only the type is checked.
	input, ok := args["input"].(string)
	if !ok {
		return evaluator.Result{}, fmt.Errorf("input is required")
	}

	if err := sanitize.Input(input, s.maxInputSize); err != nil {
		s.logger.Warn("MCP Evaluate: Input rejected", "err", err, "size", len(input))
		return evaluator.Result{}, fmt.Errorf("input rejected: %w", err)
	}

	res, err := s.wb.Evaluate(ctx, name, input)
	if err != nil {
		return evaluator.Result{}, fmt.Errorf("evaluate failed: %w", err)
	}
	return res, nil
}

func (s *Server) handleEnumerate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (enumerator.Result, error) {
	name, err := requireString(args, "name")
	if err != nil {
		return enumerator.Result{}, err
	}

	limit := 0
	if v, ok := args["limit"].(float64); ok {
		if v < 0 {
			return enumerator.Result{}, fmt.Errorf("limit must not be negative")
		}
		limit = int(v)
	}
	var opts []enumerator.Option
	if v, ok := args["include_empty"].(bool); ok {
		opts = append(opts, enumerator.WithEmptyString(v))
	}

	res, err := s.wb.Enumerate(ctx, name, limit, opts...)
	if err != nil {
		return enumerator.Result{}, fmt.Errorf("enumerate failed: %w", err)
	}
	return res, nil
}

func (s *Server) handleCreateFromExample(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (DescribeResponse, error) {
	example, err := requireString(args, "example")
	if err != nil {
		return DescribeResponse{}, err
	}
	name, _ := args["name"].(string)
	if name == "" {
		name = example
	}

	a, err := catalog.Build(example)
	if err != nil {
		return DescribeResponse{}, err
	}
	if err := s.wb.Create(ctx, name, a); err != nil {
		return DescribeResponse{}, fmt.Errorf("create failed: %w", err)
	}
	s.logger.Info("MCP: Example stored", "example", example, "automaton", name)
	return s.describe(ctx, name)
}

func (s *Server) registerResources() {
	// EXPOSE: automata://examples
	s.mcpServer.AddResource(mcp.NewResource("automata://examples", "Built-in example automata",
		mcp.WithMIMEType("text/markdown"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "automata://examples",
				MIMEType: "text/markdown",
				Text:     examplesMarkdown(),
			},
		}, nil
	})
}

func examplesMarkdown() string {
	var sb strings.Builder
	sb.WriteString("# Examples\n\n")
	for _, ex := range catalog.All() {
		fmt.Fprintf(&sb, "- `%s`: %s\n", ex.Name, ex.Description)
	}
	return sb.String()
}

func requireString(args map[string]interface{}, key string) (string, error) {
	v, _ := args[key].(string)
	if v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}
