package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphWaypointsTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "anchornav_graph_waypoints_total",
			Help: "Number of waypoints in the active navigation graph",
		},
	)

	r.GraphEdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "anchornav_graph_edges_total",
			Help: "Number of distinct edges in the active navigation graph",
		},
	)

	r.GraphResolvedTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "anchornav_graph_resolved_waypoints",
			Help: "Number of waypoints whose anchor pose is known",
		},
	)

	r.BuildWarningsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "anchornav_graph_build_warnings_total",
			Help: "Records skipped while building the navigation graph",
		},
		[]string{"reason"},
	)
}
