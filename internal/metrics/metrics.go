package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Cache names.
const (
	CacheClassification = "classification"
	CacheResponse       = "response"
	CacheWorkspace      = "workspace"
)

// Cache events.
const (
	EventHit   = "hit"
	EventMiss  = "miss"
	EventEvict = "evict"
)

// Metrics owns the pipeline collectors and the registry they are registered on.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry       *prometheus.Registry
	stageDuration  *prometheus.HistogramVec
	requests       *prometheus.CounterVec
	cacheEvents    *prometheus.CounterVec
	budgetExceeded prometheus.Counter
}

// New registers the pipeline collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		stageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "query_stage_duration_seconds",
				Help:    "Duration of each query pipeline stage in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"stage"},
		),
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "query_requests_total",
				Help: "Total number of processed queries",
			},
			[]string{"intent", "route", "success"},
		),
		cacheEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "query_cache_events_total",
				Help: "Cache hits, misses and evictions per cache",
			},
			[]string{"cache", "event"},
		),
		budgetExceeded: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "query_budget_exceeded_total",
				Help: "Queries that finished after their response time budget",
			},
		),
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (m *Metrics) RecordRequest(intent, route string, success bool) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(intent, route, strconv.FormatBool(success)).Inc()
}

func (m *Metrics) CacheEvent(cache, event string) {
	if m == nil {
		return
	}
	m.cacheEvents.WithLabelValues(cache, event).Inc()
}

func (m *Metrics) BudgetExceeded() {
	if m == nil {
		return
	}
	m.budgetExceeded.Inc()
}
