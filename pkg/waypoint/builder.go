package waypoint

// Build creates a graph from persisted anchor and pair records.
//
// Waypoints are created in anchor order with unset poses. Pairs whose
// endpoints are not among the anchors, and anchors whose id repeats an
// earlier one, are skipped; each skipped record is returned as a warning and
// construction continues.
func Build(anchors []AnchorRecord, pairs []PairRecord) (*Graph, []error) {
	g := NewGraph()
	var warnings []error

	for _, a := range anchors {
		if err := g.AddWaypoint(a.ID, a.Name, a.Type); err != nil {
			warnings = append(warnings, err)
		}
	}

	for _, p := range pairs {
		if err := g.AddEdge(p.ID1, p.ID2); err != nil {
			warnings = append(warnings, err)
		}
	}

	return g, warnings
}
