// Package metrics exposes the search driver's Prometheus instrumentation.
// Grounded on the teacher's pkg/observability package, which registers a
// handful of counters/gauges against a private registry and hands back a
// promhttp.Handler for the HTTP adapter to mount.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
)

// Recorder is the subset of instrumentation internal/search and
// internal/refine touch directly. Kept as an interface (rather than a
// concrete *Metrics everywhere) so tests can swap in a no-op without
// standing up a registry.
type Recorder interface {
	PlanExpanded()
	FlawRepaired(kind string)
	FrontierSize(n int)
	PlanAccepted()
	GroundingRetried()
	SearchDuration(seconds float64)
}

// Metrics is the default Recorder, backed by a private prometheus.Registry
// so multiple planner instances in one process (e.g. table-driven tests)
// don't collide on global registration.
type Metrics struct {
	registry *prometheus.Registry

	plansExpanded    prometheus.Counter
	flawsRepaired    *prometheus.CounterVec
	frontierSize     prometheus.Gauge
	plansAccepted    prometheus.Counter
	groundingRetries prometheus.Counter
	searchDuration   prometheus.Histogram
}

// New builds a Metrics with its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		plansExpanded: factory.NewCounter(prometheus.CounterOpts{
			Name: "pocl_plans_expanded_total",
			Help: "Partial plans popped from the frontier and expanded.",
		}),
		flawsRepaired: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pocl_flaws_repaired_total",
			Help: "Flaws repaired by kind (unsafe, open_condition, mutex_threat, unexpanded_composite).",
		}, []string{"kind"}),
		frontierSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pocl_frontier_size",
			Help: "Current number of plans held across all flaw-order queues.",
		}),
		plansAccepted: factory.NewCounter(prometheus.CounterOpts{
			Name: "pocl_plans_accepted_total",
			Help: "Complete plans returned by the search driver.",
		}),
		groundingRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "pocl_grounding_retries_total",
			Help: "Backtracking retries during final step instantiation.",
		}),
		searchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pocl_search_duration_seconds",
			Help:    "Wall-clock duration of a single search session.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) PlanExpanded()               { m.plansExpanded.Inc() }
func (m *Metrics) FlawRepaired(kind string)     { m.flawsRepaired.WithLabelValues(kind).Inc() }
func (m *Metrics) FrontierSize(n int)           { m.frontierSize.Set(float64(n)) }
func (m *Metrics) PlanAccepted()                { m.plansAccepted.Inc() }
func (m *Metrics) GroundingRetried()            { m.groundingRetries.Inc() }
func (m *Metrics) SearchDuration(seconds float64) { m.searchDuration.Observe(seconds) }

// Handler returns the promhttp handler serving this Metrics' registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Nop is a Recorder that discards everything, used by tests and by
// command invocations that never mount the HTTP adapter.
type Nop struct{}

func (Nop) PlanExpanded()                {}
func (Nop) FlawRepaired(kind string)     {}
func (Nop) FrontierSize(n int)           {}
func (Nop) PlanAccepted()                {}
func (Nop) GroundingRetried()            {}
func (Nop) SearchDuration(seconds float64) {}
