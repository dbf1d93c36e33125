package algorithms

import (
	"container/list"

	"github.com/dd0wney/cluso-anchornav/pkg/waypoint"
)

// Component is a set of waypoints that can all reach each other
type Component struct {
	ID        int
	Waypoints []waypoint.ID
}

// Components partitions a graph into its connected components
type Components struct {
	List []*Component
	Of   map[waypoint.ID]int // waypoint -> component ID
}

// ConnectedComponents finds every connected component. Components are
// numbered in the creation order of their first waypoint.
func ConnectedComponents(graph *waypoint.Graph) *Components {
	result := &Components{Of: make(map[waypoint.ID]int, graph.Len())}

	for _, start := range graph.Waypoints() {
		if _, seen := result.Of[start.ID]; seen {
			continue
		}

		component := &Component{ID: len(result.List)}
		queue := list.New()
		queue.PushBack(start.ID)
		result.Of[start.ID] = component.ID

		for queue.Len() > 0 {
			id, ok := queue.Remove(queue.Front()).(waypoint.ID)
			if !ok {
				continue
			}
			component.Waypoints = append(component.Waypoints, id)

			for _, next := range graph.Neighbors(id) {
				if _, seen := result.Of[next]; !seen {
					result.Of[next] = component.ID
					queue.PushBack(next)
				}
			}
		}

		result.List = append(result.List, component)
	}

	return result
}

// Connected reports whether a and b lie in the same component
func (c *Components) Connected(a, b waypoint.ID) bool {
	ca, ok := c.Of[a]
	if !ok {
		return false
	}
	cb, ok := c.Of[b]
	return ok && ca == cb
}

// Size returns the number of waypoints in the component of id
func (c *Components) Size(id waypoint.ID) int {
	cid, ok := c.Of[id]
	if !ok {
		return 0
	}
	return len(c.List[cid].Waypoints)
}
