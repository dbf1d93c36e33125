package metrics

import (
	"time"
)

// Route search results
const (
	ResultFound       = "found"
	ResultUnreachable = "unreachable"
)

// Marker operations
const (
	OpPlace   = "place"
	OpArrival = "arrival"
	OpRemove  = "remove"
)

// RecordGraph records the size of a freshly built graph
func (r *Registry) RecordGraph(waypoints, edges int) {
	r.GraphWaypointsTotal.Set(float64(waypoints))
	r.GraphEdgesTotal.Set(float64(edges))
	r.GraphResolvedTotal.Set(0)
}

// RecordBuildWarning counts a record skipped during graph construction
func (r *Registry) RecordBuildWarning(reason string) {
	r.BuildWarningsTotal.WithLabelValues(reason).Inc()
}

// RecordRouteSearch records a shortest path search
func (r *Registry) RecordRouteSearch(found bool, hops int, duration time.Duration) {
	result := ResultUnreachable
	if found {
		result = ResultFound
	} else {
		hops = 0
	}
	r.RouteSearchesTotal.WithLabelValues(result).Inc()
	r.RouteSearchDuration.Observe(duration.Seconds())
	r.RouteHops.Set(float64(hops))
}

// RecordMarkerOp counts a marker sink call and adjusts the live gauge
func (r *Registry) RecordMarkerOp(op string) {
	r.MarkerOperationsTotal.WithLabelValues(op).Inc()
	switch op {
	case OpPlace, OpArrival:
		r.MarkersLive.Inc()
	case OpRemove:
		r.MarkersLive.Dec()
	}
}

// SetNavigationState sets the current navigation state
func (r *Registry) SetNavigationState(state string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Reset all states
	for _, s := range navigationStates {
		r.NavigationState.WithLabelValues(s).Set(0)
	}

	// Set current state
	r.NavigationState.WithLabelValues(state).Set(1)
}

// RecordHistory records the current history sizes
func (r *Registry) RecordHistory(anchors, pairs int) {
	r.HistoryRecordsTotal.WithLabelValues("anchor").Set(float64(anchors))
	r.HistoryRecordsTotal.WithLabelValues("pair").Set(float64(pairs))
}

// Reset clears the per-session gauges when a navigation session ends
func (r *Registry) Reset() {
	r.GraphWaypointsTotal.Set(0)
	r.GraphEdgesTotal.Set(0)
	r.GraphResolvedTotal.Set(0)
	r.RouteHops.Set(0)
	r.MarkersLive.Set(0)
	r.SetNavigationState("no_route")
}
