package navigation

// State is the navigation state of a session
type State int

const (
	// NoRoute means no route is displayed: no waypoint is resolved yet, the
	// route is being recomputed, or the destination is unreachable
	NoRoute State = iota
	// RouteActive means route markers lead from the nearest waypoint to the destination
	RouteActive
	// DestinationReached means the nearest waypoint is the destination
	DestinationReached
)

// String returns the metric and log name of the state
func (s State) String() string {
	switch s {
	case NoRoute:
		return "no_route"
	case RouteActive:
		return "route_active"
	case DestinationReached:
		return "destination_reached"
	default:
		return "unknown"
	}
}
