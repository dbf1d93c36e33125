package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initNavigationMetrics() {
	r.TicksTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "anchornav_ticks_total",
			Help: "Navigation loop iterations",
		},
	)

	r.NearestChangesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "anchornav_nearest_changes_total",
			Help: "Times the waypoint nearest to the user changed",
		},
	)

	r.RouteSearchesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "anchornav_route_searches_total",
			Help: "Shortest path searches by result",
		},
		[]string{"result"},
	)

	r.RouteSearchDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "anchornav_route_search_duration_seconds",
			Help:    "Shortest path search duration in seconds",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		},
	)

	r.RouteHops = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "anchornav_route_hops",
			Help: "Edges on the active route, 0 when no route is active",
		},
	)

	r.NavigationState = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "anchornav_navigation_state",
			Help: "Current navigation state (1 = active)",
		},
		[]string{"state"},
	)

	r.ArrivalsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "anchornav_arrivals_total",
			Help: "Times the destination became the nearest waypoint",
		},
	)
}

func (r *Registry) initMarkerMetrics() {
	r.MarkersLive = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "anchornav_markers_live",
			Help: "Markers currently placed in the scene",
		},
	)

	r.MarkerOperationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "anchornav_marker_operations_total",
			Help: "Marker sink calls by operation",
		},
		[]string{"operation"},
	)

	r.MarkerReconciliations = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "anchornav_marker_reconciliations_total",
			Help: "Times the placed markers were rebuilt from the active route",
		},
	)
}
