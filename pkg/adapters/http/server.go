package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/internal/sanitize"
	"github.com/aretw0/automata/pkg/codec"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/enumerator"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MaxBodySize caps request bodies.
const MaxBodySize = 1 << 20

// Server serves the automata API over a Workbench.
type Server struct {
	wb           *automata.Workbench
	logger       *slog.Logger
	metrics      *Metrics
	gatherer     prometheus.Gatherer
	maxInputSize int
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger used for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics counts requests in m and exposes gatherer on /metrics.
func WithMetrics(m *Metrics, gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = gatherer
	}
}

// WithMaxInputSize bounds evaluated inputs in bytes.
func WithMaxInputSize(n int) Option {
	return func(s *Server) {
		s.maxInputSize = n
	}
}

// NewHandler creates the HTTP handler for the workbench.
func NewHandler(wb *automata.Workbench, opts ...Option) http.Handler {
	s := &Server{
		wb:           wb,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxInputSize: sanitize.DefaultMaxInputSize,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	if s.metrics != nil {
		r.Use(s.metrics.instrument)
	}

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Post("/validate", s.Validate)
	r.Post("/evaluate", s.Evaluate)
	r.Post("/enumerate", s.Enumerate)

	r.Route("/automata", func(r chi.Router) {
		r.Get("/", s.ListAutomata)
		r.Post("/", s.CreateAutomaton)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.GetAutomaton)
			r.Put("/", s.PutAutomaton)
			r.Delete("/", s.DeleteAutomaton)
			r.Post("/edits", s.EditAutomaton)
			r.Post("/evaluate", s.EvaluateNamed)
			r.Post("/enumerate", s.EnumerateNamed)
			r.Get("/diagnostics", s.Diagnostics)
			r.Get("/graph", s.Graph)
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "automata-http",
		"version": strings.TrimSpace(automata.Version),
	})
}

// Validate handles the POST /validate request.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	var body ModelRequest
	if !s.decode(w, r, &body) {
		return
	}
	a, err := decodeModel(body.Automaton)
	if err != nil {
		s.fail(w, "Validate", err)
		return
	}
	s.writeJSON(w, http.StatusOK, newDiagnostics(a))
}

// Evaluate handles the POST /evaluate request.
func (s *Server) Evaluate(w http.ResponseWriter, r *http.Request) {
	var body EvaluateRequest
	if !s.decode(w, r, &body) {
		return
	}
	a, err := decodeModel(body.Automaton)
	if err != nil {
		s.fail(w, "Evaluate", err)
		return
	}
	if err := s.sanitize(body.Input); err != nil {
		s.fail(w, "Evaluate", err)
		return
	}
	res, err := s.wb.EvaluateModel(r.Context(), a, body.Input)
	if err != nil {
		s.fail(w, "Evaluate", err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// Enumerate handles the POST /enumerate request.
func (s *Server) Enumerate(w http.ResponseWriter, r *http.Request) {
	var body EnumerateRequest
	if !s.decode(w, r, &body) {
		return
	}
	a, err := decodeModel(body.Automaton)
	if err != nil {
		s.fail(w, "Enumerate", err)
		return
	}
	opts, err := enumerateOptions(body)
	if err != nil {
		s.fail(w, "Enumerate", err)
		return
	}
	res, err := s.wb.EnumerateModel(r.Context(), a, body.Limit, opts...)
	if err != nil {
		s.fail(w, "Enumerate", err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// ListAutomata handles the GET /automata request.
func (s *Server) ListAutomata(w http.ResponseWriter, r *http.Request) {
	names, err := s.wb.List(r.Context())
	if err != nil {
		s.fail(w, "ListAutomata", err)
		return
	}
	s.writeJSON(w, http.StatusOK, ListResponse{Automata: names})
}

// CreateAutomaton handles the POST /automata request.
func (s *Server) CreateAutomaton(w http.ResponseWriter, r *http.Request) {
	var body CreateRequest
	if !s.decode(w, r, &body) {
		return
	}
	var a *domain.Automaton
	if len(body.Automaton) > 0 {
		var err error
		if a, err = decodeModel(body.Automaton); err != nil {
			s.fail(w, "CreateAutomaton", err)
			return
		}
	}
	if err := s.wb.Create(r.Context(), body.Name, a); err != nil {
		s.fail(w, "CreateAutomaton", err)
		return
	}
	if a == nil {
		a = domain.New()
	}
	w.Header().Set("Location", "/automata/"+body.Name)
	s.writeJSON(w, http.StatusCreated, codec.Encode(a))
}

// GetAutomaton handles the GET /automata/{name} request.
func (s *Server) GetAutomaton(w http.ResponseWriter, r *http.Request) {
	a, err := s.wb.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, "GetAutomaton", err)
		return
	}
	s.writeJSON(w, http.StatusOK, codec.Encode(a))
}

// PutAutomaton handles the PUT /automata/{name} request. The body is the
// document itself.
func (s *Server) PutAutomaton(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err != nil {
		s.badRequest(w, "PutAutomaton", err)
		return
	}
	a, err := decodeModel(data)
	if err != nil {
		s.fail(w, "PutAutomaton", err)
		return
	}
	if err := s.wb.Put(r.Context(), chi.URLParam(r, "name"), a); err != nil {
		s.fail(w, "PutAutomaton", err)
		return
	}
	s.writeJSON(w, http.StatusOK, codec.Encode(a))
}

// DeleteAutomaton handles the DELETE /automata/{name} request.
func (s *Server) DeleteAutomaton(w http.ResponseWriter, r *http.Request) {
	if err := s.wb.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.fail(w, "DeleteAutomaton", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EditAutomaton handles the POST /automata/{name}/edits request.
func (s *Server) EditAutomaton(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err != nil {
		s.badRequest(w, "EditAutomaton", err)
		return
	}
	edits, err := codec.UnmarshalEdits(data, codec.JSON)
	if err != nil {
		s.fail(w, "EditAutomaton", err)
		return
	}
	a, err := s.wb.Edit(r.Context(), chi.URLParam(r, "name"), edits)
	if err != nil {
		s.fail(w, "EditAutomaton", err)
		return
	}
	s.writeJSON(w, http.StatusOK, codec.Encode(a))
}

// EvaluateNamed handles the POST /automata/{name}/evaluate request.
func (s *Server) EvaluateNamed(w http.ResponseWriter, r *http.Request) {
	var body EvaluateRequest
	if !s.decode(w, r, &body) {
		return
	}
	if err := s.sanitize(body.Input); err != nil {
		s.fail(w, "EvaluateNamed", err)
		return
	}
	res, err := s.wb.Evaluate(r.Context(), chi.URLParam(r, "name"), body.Input)
	if err != nil {
		s.fail(w, "EvaluateNamed", err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// EnumerateNamed handles the POST /automata/{name}/enumerate request.
func (s *Server) EnumerateNamed(w http.ResponseWriter, r *http.Request) {
	var body EnumerateRequest
	if !s.decode(w, r, &body) {
		return
	}
	opts, err := enumerateOptions(body)
	if err != nil {
		s.fail(w, "EnumerateNamed", err)
		return
	}
	res, err := s.wb.Enumerate(r.Context(), chi.URLParam(r, "name"), body.Limit, opts...)
	if err != nil {
		s.fail(w, "EnumerateNamed", err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// Diagnostics handles the GET /automata/{name}/diagnostics request.
func (s *Server) Diagnostics(w http.ResponseWriter, r *http.Request) {
	a, err := s.wb.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, "Diagnostics", err)
		return
	}
	s.writeJSON(w, http.StatusOK, newDiagnostics(a))
}

// Graph handles the GET /automata/{name}/graph request. Query parameters:
// format (mermaid|dot) and input, which overlays the run on a Mermaid graph.
func (s *Server) Graph(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")
	a, err := s.wb.Get(ctx, name)
	if err != nil {
		s.fail(w, "Graph", err)
		return
	}

	var overlay *graph.Overlay
	if r.URL.Query().Has("input") {
		input := r.URL.Query().Get("input")
		if err := s.sanitize(input); err != nil {
			s.fail(w, "Graph", err)
			return
		}
		res, err := s.wb.EvaluateModel(ctx, a, input)
		if err != nil {
			s.fail(w, "Graph", err)
			return
		}
		initial, _ := a.InitialState()
		overlay = graph.OverlayFromTrace(initial, res.Trace)
	}

	out, err := graph.Render(a, graph.Format(r.URL.Query().Get("format")), overlay)
	if err != nil {
		s.badRequest(w, "Graph", err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, out)
}

// -- Helpers --

func decodeModel(raw json.RawMessage) (*domain.Automaton, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: automaton is required", domain.ErrFormat)
	}
	return codec.Unmarshal(raw, codec.JSON)
}

func enumerateOptions(body EnumerateRequest) ([]enumerator.Option, error) {
	var opts []enumerator.Option
	if body.IncludeEmpty != nil {
		opts = append(opts, enumerator.WithEmptyString(*body.IncludeEmpty))
	}
	if body.MaxLength > 0 {
		opts = append(opts, enumerator.WithMaxLength(body.MaxLength))
	}
	if body.Strategy != "" {
		strategy, err := enumerator.ParseStrategy(body.Strategy)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		opts = append(opts, enumerator.WithStrategy(strategy))
	}
	if body.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", errBadRequest)
	}
	return opts, nil
}

func (s *Server) sanitize(input string) error {
	if err := sanitize.Input(input, s.maxInputSize); err != nil {
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return nil
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err := dec.Decode(v); err != nil {
		s.badRequest(w, "decode", err)
		return false
	}
	return true
}

var errBadRequest = errors.New("bad request")

// StatusFor maps an error to its HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrAutomatonNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAutomatonExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotComplete),
		errors.Is(err, domain.ErrUnknownSymbol):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrFormat),
		errors.Is(err, domain.ErrReference),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrInvalidSymbol),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrUnknownEdit),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	code := StatusFor(err)
	if code >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", "err", err)
	} else {
		s.logger.Debug(op+" rejected", "err", err, "code", code)
	}
	s.writeJSON(w, code, ErrorResponse{Error: err.Error()})
}

func (s *Server) badRequest(w http.ResponseWriter, op string, err error) {
	s.logger.Warn(op+": Invalid request body", "err", err)
	s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
