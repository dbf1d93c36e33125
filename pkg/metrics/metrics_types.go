package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the application
type Registry struct {
	// Graph Metrics
	GraphWaypointsTotal prometheus.Gauge
	GraphEdgesTotal     prometheus.Gauge
	GraphResolvedTotal  prometheus.Gauge
	BuildWarningsTotal  *prometheus.CounterVec

	// Navigation Metrics
	TicksTotal          prometheus.Counter
	NearestChangesTotal prometheus.Counter
	RouteSearchesTotal  *prometheus.CounterVec
	RouteSearchDuration prometheus.Histogram
	RouteHops           prometheus.Gauge
	NavigationState     *prometheus.GaugeVec
	ArrivalsTotal       prometheus.Counter

	// Marker Metrics
	MarkersLive           prometheus.Gauge
	MarkerOperationsTotal *prometheus.CounterVec
	MarkerReconciliations prometheus.Counter

	// History Metrics
	HistoryRecordsTotal  *prometheus.GaugeVec
	HistoryPrunedTotal   prometheus.Counter
	HistoryRejectedTotal *prometheus.CounterVec

	registry *prometheus.Registry
	mu       sync.RWMutex
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// States reported through the NavigationState gauge
var navigationStates = []string{"no_route", "route_active", "destination_reached"}

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initGraphMetrics()
	r.initNavigationMetrics()
	r.initMarkerMetrics()
	r.initHistoryMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
