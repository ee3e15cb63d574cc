package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors of the API.
type Metrics struct {
	Evaluations  *prometheus.CounterVec
	Steps        prometheus.Histogram
	Enumerations prometheus.Counter
	Requests     *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_evaluations_total",
				Help: "Total number of evaluated input strings",
			},
			[]string{"result"},
		),
		Steps: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "automata_evaluation_steps",
				Help:    "Number of transitions taken per evaluation",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
		Enumerations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "automata_enumerations_total",
				Help: "Total number of shortest-accepted enumerations",
			},
		),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_http_requests_total",
				Help: "Total number of HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
	}
	reg.MustRegister(m.Evaluations, m.Steps, m.Enumerations, m.Requests)
	return m
}

// Hooks returns lifecycle hooks that record evaluations and enumerations.
// Install them on the Workbench served by the handler.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnVerdict: func(_ context.Context, e *domain.VerdictEvent) {
			result := "rejected"
			if e.Accepted {
				result = "accepted"
			}
			m.Evaluations.WithLabelValues(result).Inc()
			m.Steps.Observe(float64(e.Steps))
		},
		OnEnumeration: func(context.Context, *domain.EnumerationEvent) {
			m.Enumerations.Inc()
		},
	}
}

// instrument counts requests by their chi route pattern, so path parameters
// do not explode the label cardinality.
func (m *Metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.Requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	})
}
