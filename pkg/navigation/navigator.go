// Package navigation runs the per-frame loop that tracks the waypoint nearest
// to the user, keeps a shortest route from it to the destination, and keeps
// the visual markers in step with that route.
package navigation

import (
	"errors"
	"math"
	"time"

	"github.com/dd0wney/cluso-anchornav/pkg/algorithms"
	"github.com/dd0wney/cluso-anchornav/pkg/logging"
	"github.com/dd0wney/cluso-anchornav/pkg/metrics"
	"github.com/dd0wney/cluso-anchornav/pkg/waypoint"
)

var (
	ErrNilGraph         = errors.New("navigation: graph is nil")
	ErrNoPositionSource = errors.New("navigation: position source is required")
	ErrNoMarkerSink     = errors.New("navigation: marker sink is required")
)

// Options wires a Navigator to its collaborators
type Options struct {
	// Poses is polled for still-unresolved waypoints every tick. It may be
	// nil when poses are pushed through Navigator.Resolve.
	Poses    PoseSource
	Position PositionSource
	Markers  MarkerSink
	Logger   logging.Logger
	Metrics  *metrics.Registry
}

// Snapshot describes the navigator after a tick
type Snapshot struct {
	Tick           uint64
	State          State
	Nearest        waypoint.ID // "" while no waypoint is resolved
	Destination    waypoint.ID
	Route          algorithms.Route
	Markers        int
	NearestChanged bool
	RouteChanged   bool
}

// Navigator is the navigation loop of one session. It is driven by Tick from
// a single goroutine and must not be shared.
type Navigator struct {
	graph       *waypoint.Graph
	destination waypoint.ID

	poses    PoseSource
	position PositionSource
	sink     MarkerSink
	logger   logging.Logger
	metrics  *metrics.Registry

	state      State
	nearest    waypoint.ID
	hasNearest bool
	route      algorithms.Route
	routeFresh bool

	markers    []MarkerHandle
	arrival    MarkerHandle
	hasArrival bool
	inSync     bool

	ticks  uint64
	closed bool
}

// New creates a navigator toward destination. The destination must be a
// waypoint of graph; checking that its type allows navigation is up to the
// caller.
func New(graph *waypoint.Graph, destination waypoint.ID, opts Options) (*Navigator, error) {
	if graph == nil {
		return nil, ErrNilGraph
	}
	if opts.Position == nil {
		return nil, ErrNoPositionSource
	}
	if opts.Markers == nil {
		return nil, ErrNoMarkerSink
	}
	if !graph.Has(destination) {
		return nil, waypoint.UnknownWaypointError("navigation.New", destination)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	n := &Navigator{
		graph:       graph,
		destination: destination,
		poses:       opts.Poses,
		position:    opts.Position,
		sink:        opts.Markers,
		logger:      logger.With(logging.Component("navigator"), logging.Destination(string(destination))),
		metrics:     opts.Metrics,
		state:       NoRoute,
		inSync:      true,
	}
	if n.metrics != nil {
		n.metrics.SetNavigationState(NoRoute.String())
	}
	return n, nil
}

// Tick runs one iteration of the loop: refresh poses, track the nearest
// waypoint, check for arrival, recompute the route if the start moved, and
// reconcile markers if they no longer match.
func (n *Navigator) Tick() Snapshot {
	if n.closed {
		return n.Snapshot()
	}

	n.ticks++
	if n.metrics != nil {
		n.metrics.TicksTotal.Inc()
	}

	n.refreshPoses()
	nearestChanged := n.trackNearest()

	routeChanged := false
	if n.hasNearest {
		if n.nearest == n.destination {
			if n.state != DestinationReached {
				n.arrive()
				routeChanged = true
			}
		} else if !n.routeFresh {
			n.recompute()
			routeChanged = true
		}
	}

	if !n.inSync {
		n.Reconcile()
	}

	snap := n.Snapshot()
	snap.NearestChanged = nearestChanged
	snap.RouteChanged = routeChanged
	return snap
}

// Resolve records the pose of a waypoint whose anchor has just been
// resolved. Later poses for the same waypoint are ignored.
func (n *Navigator) Resolve(id waypoint.ID, pose waypoint.Pose) error {
	changed, err := n.graph.SetPose(id, pose)
	if err != nil || !changed {
		return err
	}

	n.logger.Debug("anchor resolved", logging.WaypointID(string(id)), logging.Tick(n.ticks))
	if n.metrics != nil {
		n.metrics.GraphResolvedTotal.Inc()
	}

	// markers appear as soon as both ends of a route segment are known
	if n.route.Contains(id) {
		n.inSync = false
	}
	return nil
}

func (n *Navigator) refreshPoses() {
	if n.poses == nil {
		return
	}
	for _, id := range n.graph.Unresolved() {
		if pose, ok := n.poses.PoseOf(id); ok {
			_ = n.Resolve(id, pose)
		}
	}
}

// trackNearest selects the resolved waypoint closest to the user. Ties go to
// the waypoint created first. It reports whether the nearest waypoint changed.
func (n *Navigator) trackNearest() bool {
	user := n.position.UserPosition()

	var best *waypoint.Waypoint
	bestDist := math.Inf(1)
	for _, w := range n.graph.Resolved() {
		pose, _ := w.Pose()
		if d := user.Distance(pose.Position); d < bestDist {
			best, bestDist = w, d
		}
	}

	if best == nil || (n.hasNearest && best.ID == n.nearest) {
		return false
	}

	n.logger.Debug("nearest waypoint changed",
		logging.WaypointID(string(best.ID)),
		logging.String("previous", string(n.nearest)),
		logging.Distance(bestDist),
		logging.Tick(n.ticks))

	n.nearest = best.ID
	n.hasNearest = true
	n.invalidate()
	if n.metrics != nil {
		n.metrics.NearestChangesTotal.Inc()
	}
	return true
}

// invalidate drops the cached route after the starting point moved
func (n *Navigator) invalidate() {
	n.routeFresh = false
	if n.route != nil {
		n.route = nil
		n.inSync = false
	}
	if n.hasArrival {
		n.inSync = false
	}
	n.enter(NoRoute)
}

func (n *Navigator) arrive() {
	n.route = algorithms.Route{n.destination}
	n.routeFresh = true
	n.inSync = false
	n.enter(DestinationReached)

	n.logger.Info("destination reached", logging.Tick(n.ticks))
	if n.metrics != nil {
		n.metrics.ArrivalsTotal.Inc()
		n.metrics.RouteHops.Set(0)
	}
}

func (n *Navigator) recompute() {
	start := time.Now()
	route, found := algorithms.ShortestPath(n.graph, n.nearest, n.destination)
	elapsed := time.Since(start)

	n.routeFresh = true
	n.inSync = false
	if n.metrics != nil {
		n.metrics.RecordRouteSearch(found, route.Hops(), elapsed)
	}

	if !found {
		n.route = nil
		n.enter(NoRoute)
		n.logger.Warn("destination unreachable from current position",
			logging.WaypointID(string(n.nearest)), logging.Tick(n.ticks))
		return
	}

	n.route = route
	n.enter(RouteActive)
	n.logger.Debug("route computed",
		logging.Route(route.String()),
		logging.Int("hops", route.Hops()),
		logging.Latency(elapsed))
}

func (n *Navigator) enter(s State) {
	if n.state == s {
		return
	}
	n.logger.Debug("navigation state changed",
		logging.String("from", n.state.String()),
		logging.State(s.String()),
		logging.Tick(n.ticks))
	n.state = s
	if n.metrics != nil {
		n.metrics.SetNavigationState(s.String())
	}
}

// Reconcile replaces every placed marker with the markers the current state
// calls for: one arrival marker when the destination is reached, otherwise
// one directional marker per consecutive pair of resolved route waypoints.
// Calling it repeatedly without a state change yields the same marker set.
func (n *Navigator) Reconcile() {
	n.clearMarkers()

	switch n.state {
	case DestinationReached:
		if pose, ok := n.graph.Pose(n.destination); ok {
			n.arrival = n.sink.PlaceArrivalMarker(pose)
			n.hasArrival = true
			n.countMarker(metrics.OpArrival)
		}
	case RouteActive:
		for i := 1; i < len(n.route); i++ {
			from, ok := n.graph.Pose(n.route[i-1])
			if !ok {
				continue
			}
			to, ok := n.graph.Pose(n.route[i])
			if !ok {
				continue
			}
			n.markers = append(n.markers, n.sink.PlaceMarker(from, to))
			n.countMarker(metrics.OpPlace)
		}
	}

	n.inSync = true
	if n.metrics != nil {
		n.metrics.MarkerReconciliations.Inc()
	}
}

func (n *Navigator) clearMarkers() {
	for _, h := range n.markers {
		n.sink.RemoveMarker(h)
		n.countMarker(metrics.OpRemove)
	}
	n.markers = n.markers[:0]

	if n.hasArrival {
		n.sink.RemoveMarker(n.arrival)
		n.countMarker(metrics.OpRemove)
		n.arrival = nil
		n.hasArrival = false
	}
}

func (n *Navigator) countMarker(op string) {
	if n.metrics != nil {
		n.metrics.RecordMarkerOp(op)
	}
}

// Close ends the session: every marker is removed and the graph is cleared.
// Further ticks do nothing.
func (n *Navigator) Close() {
	if n.closed {
		return
	}
	n.clearMarkers()
	n.graph.Clear()

	n.route = nil
	n.routeFresh = false
	n.hasNearest = false
	n.nearest = ""
	n.inSync = true
	n.enter(NoRoute)
	n.closed = true

	n.logger.Debug("navigation closed", logging.Tick(n.ticks))
	if n.metrics != nil {
		n.metrics.Reset()
	}
}

// Snapshot returns the current navigation state
func (n *Navigator) Snapshot() Snapshot {
	return Snapshot{
		Tick:        n.ticks,
		State:       n.state,
		Nearest:     n.nearest,
		Destination: n.destination,
		Route:       append(algorithms.Route(nil), n.route...),
		Markers:     n.MarkerCount(),
	}
}

// State returns the current navigation state
func (n *Navigator) State() State {
	return n.state
}

// Nearest returns the waypoint currently nearest to the user
func (n *Navigator) Nearest() (waypoint.ID, bool) {
	return n.nearest, n.hasNearest
}

// Route returns a copy of the active route. While the destination is reached
// the route holds just the destination.
func (n *Navigator) Route() algorithms.Route {
	return append(algorithms.Route(nil), n.route...)
}

// Destination returns the target waypoint
func (n *Navigator) Destination() waypoint.ID {
	return n.destination
}

// MarkerCount returns the number of markers currently placed
func (n *Navigator) MarkerCount() int {
	c := len(n.markers)
	if n.hasArrival {
		c++
	}
	return c
}

// InSync reports whether the placed markers match the current route
func (n *Navigator) InSync() bool {
	return n.inSync
}
