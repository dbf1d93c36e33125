package waypoint

// ID identifies a waypoint. It is the cloud anchor id the waypoint was hosted with.
type ID string

// Type tags a waypoint with a category
type Type string

const (
	// TypeWaypoint marks an intermediate waypoint
	TypeWaypoint Type = "waypoint"
	// TypeDestination marks a waypoint users can navigate to
	TypeDestination Type = "destination"
)

// Waypoint is a node of the navigation graph.
// Adjacency is held as ids, never as pointers to other waypoints.
type Waypoint struct {
	ID   ID
	Name string
	Type Type

	pose     Pose
	resolved bool

	adjacent map[ID]struct{}
	order    []ID // neighbor enumeration order
}

func newWaypoint(id ID, name string, typ Type) *Waypoint {
	return &Waypoint{
		ID:       id,
		Name:     name,
		Type:     typ,
		adjacent: make(map[ID]struct{}),
	}
}

// Pose returns the waypoint pose and whether its anchor has been resolved
func (w *Waypoint) Pose() (Pose, bool) {
	return w.pose, w.resolved
}

// Resolved reports whether the waypoint has a known pose
func (w *Waypoint) Resolved() bool {
	return w.resolved
}

// Degree returns the number of distinct neighbors
func (w *Waypoint) Degree() int {
	return len(w.order)
}

// IsAdjacent reports whether other is a direct neighbor
func (w *Waypoint) IsAdjacent(other ID) bool {
	_, ok := w.adjacent[other]
	return ok
}

func (w *Waypoint) link(other ID) bool {
	if _, ok := w.adjacent[other]; ok {
		return false
	}
	w.adjacent[other] = struct{}{}
	w.order = append(w.order, other)
	return true
}

// AnchorRecord is a persisted anchor as supplied to Build
type AnchorRecord struct {
	ID   ID
	Name string
	Type Type
}

// PairRecord is a persisted walkable connection between two anchors
type PairRecord struct {
	ID1 ID
	ID2 ID
}
