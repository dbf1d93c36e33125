package algorithms

import (
	"strings"

	"github.com/dd0wney/cluso-anchornav/pkg/waypoint"
)

// Route is an ordered sequence of waypoints from a start to a goal, both
// included.
type Route []waypoint.ID

// Len returns the number of waypoints on the route
func (r Route) Len() int {
	return len(r)
}

// Hops returns the number of edges on the route
func (r Route) Hops() int {
	if len(r) == 0 {
		return 0
	}
	return len(r) - 1
}

// Start returns the first waypoint, or "" for an empty route
func (r Route) Start() waypoint.ID {
	if len(r) == 0 {
		return ""
	}
	return r[0]
}

// Goal returns the last waypoint, or "" for an empty route
func (r Route) Goal() waypoint.ID {
	if len(r) == 0 {
		return ""
	}
	return r[len(r)-1]
}

// Contains reports whether id lies on the route
func (r Route) Contains(id waypoint.ID) bool {
	for _, v := range r {
		if v == id {
			return true
		}
	}
	return false
}

// Equal reports whether both routes visit the same waypoints in the same order
func (r Route) Equal(o Route) bool {
	if len(r) != len(o) {
		return false
	}
	for i := range r {
		if r[i] != o[i] {
			return false
		}
	}
	return true
}

// String renders the route as "a -> b -> c"
func (r Route) String() string {
	parts := make([]string, len(r))
	for i, id := range r {
		parts[i] = string(id)
	}
	return strings.Join(parts, " -> ")
}
