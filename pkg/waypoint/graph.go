package waypoint

// Graph is the in-memory navigation graph of one session.
// Waypoints are addressed by id; adjacency is kept symmetric.
// A Graph is owned by a single navigation loop and is not safe for
// concurrent use.
type Graph struct {
	waypoints map[ID]*Waypoint
	order     []ID
	edges     int
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{
		waypoints: make(map[ID]*Waypoint),
	}
}

// AddWaypoint creates a waypoint with an unset pose
func (g *Graph) AddWaypoint(id ID, name string, typ Type) error {
	if id == "" {
		return NewError("AddWaypoint").Cause(ErrEmptyID).Err()
	}
	if _, exists := g.waypoints[id]; exists {
		return NewError("AddWaypoint").Waypoint(id).Cause(ErrDuplicateWaypoint).Err()
	}

	g.waypoints[id] = newWaypoint(id, name, typ)
	g.order = append(g.order, id)
	return nil
}

// AddEdge connects a and b in both directions. Adding an existing edge, or
// an edge from a waypoint to itself, changes nothing.
func (g *Graph) AddEdge(a, b ID) error {
	wa, ok := g.waypoints[a]
	if !ok {
		return NewError("AddEdge").Edge(a, b).Cause(ErrUnknownWaypoint).Err()
	}
	wb, ok := g.waypoints[b]
	if !ok {
		return NewError("AddEdge").Edge(a, b).Cause(ErrUnknownWaypoint).Err()
	}
	if a == b {
		return nil
	}

	if wa.link(b) {
		wb.link(a)
		g.edges++
	}
	return nil
}

// Waypoint returns the waypoint with the given id
func (g *Graph) Waypoint(id ID) (*Waypoint, bool) {
	w, ok := g.waypoints[id]
	return w, ok
}

// Has reports whether id is part of the graph
func (g *Graph) Has(id ID) bool {
	_, ok := g.waypoints[id]
	return ok
}

// Neighbors returns the ids adjacent to id in the order the edges were added.
// The returned slice must not be modified.
func (g *Graph) Neighbors(id ID) []ID {
	w, ok := g.waypoints[id]
	if !ok {
		return nil
	}
	return w.order
}

// Pose returns the pose of id, if the waypoint exists and is resolved
func (g *Graph) Pose(id ID) (Pose, bool) {
	w, ok := g.waypoints[id]
	if !ok {
		return Pose{}, false
	}
	return w.Pose()
}

// SetPose records the resolved pose of id. Poses only go from unknown to
// known: once a waypoint is resolved, later calls leave it unchanged and
// return false.
func (g *Graph) SetPose(id ID, pose Pose) (bool, error) {
	w, ok := g.waypoints[id]
	if !ok {
		return false, UnknownWaypointError("SetPose", id)
	}
	if w.resolved {
		return false, nil
	}
	w.pose = pose
	w.resolved = true
	return true, nil
}

// Waypoints returns all waypoints in creation order
func (g *Graph) Waypoints() []*Waypoint {
	out := make([]*Waypoint, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.waypoints[id])
	}
	return out
}

// Resolved returns the waypoints with a known pose in creation order
func (g *Graph) Resolved() []*Waypoint {
	out := make([]*Waypoint, 0, len(g.order))
	for _, id := range g.order {
		if w := g.waypoints[id]; w.resolved {
			out = append(out, w)
		}
	}
	return out
}

// Unresolved returns the ids of waypoints still waiting for a pose
func (g *Graph) Unresolved() []ID {
	var out []ID
	for _, id := range g.order {
		if !g.waypoints[id].resolved {
			out = append(out, id)
		}
	}
	return out
}

// Destinations returns the waypoints tagged with destType in creation order
func (g *Graph) Destinations(destType Type) []*Waypoint {
	var out []*Waypoint
	for _, id := range g.order {
		if w := g.waypoints[id]; w.Type == destType {
			out = append(out, w)
		}
	}
	return out
}

// Len returns the number of waypoints
func (g *Graph) Len() int {
	return len(g.order)
}

// EdgeCount returns the number of distinct undirected edges
func (g *Graph) EdgeCount() int {
	return g.edges
}

// Clear drops every waypoint and edge
func (g *Graph) Clear() {
	g.waypoints = make(map[ID]*Waypoint)
	g.order = nil
	g.edges = 0
}
