package algorithms

import (
	"container/list"

	"github.com/dd0wney/cluso-anchornav/pkg/waypoint"
)

// ShortestPath finds the route with the fewest edges from startID to goalID
// using breadth-first search. Neighbors are expanded in adjacency order, so
// among several shortest routes the first one discovered is returned.
// The second result is false when either id is unknown or goalID cannot be
// reached.
func ShortestPath(graph *waypoint.Graph, startID, goalID waypoint.ID) (Route, bool) {
	if !graph.Has(startID) || !graph.Has(goalID) {
		return nil, false
	}

	queue := list.New()
	queue.PushBack(startID)

	// node -> predecessor; the start maps to itself
	previous := map[waypoint.ID]waypoint.ID{startID: startID}

	for queue.Len() > 0 {
		currentID := queue.Remove(queue.Front()).(waypoint.ID)

		if currentID == goalID {
			return reconstructRoute(goalID, previous), true
		}

		for _, neighborID := range graph.Neighbors(currentID) {
			if _, seen := previous[neighborID]; !seen {
				previous[neighborID] = currentID
				queue.PushBack(neighborID)
			}
		}
	}

	return nil, false
}

// reconstructRoute walks predecessor links back from goal and reverses them
func reconstructRoute(goal waypoint.ID, previous map[waypoint.ID]waypoint.ID) Route {
	route := Route{goal}
	node := goal
	for node != previous[node] {
		node = previous[node]
		route = append(route, node)
	}

	for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
		route[i], route[j] = route[j], route[i]
	}
	return route
}

// HopDistances returns the number of edges from sourceID to every waypoint
// reachable from it, including sourceID itself at distance 0.
func HopDistances(graph *waypoint.Graph, sourceID waypoint.ID) map[waypoint.ID]int {
	if !graph.Has(sourceID) {
		return map[waypoint.ID]int{}
	}

	distances := map[waypoint.ID]int{sourceID: 0}

	queue := list.New()
	queue.PushBack(sourceID)

	for queue.Len() > 0 {
		currentID := queue.Remove(queue.Front()).(waypoint.ID)
		currentDist := distances[currentID]

		for _, neighborID := range graph.Neighbors(currentID) {
			if _, visited := distances[neighborID]; !visited {
				distances[neighborID] = currentDist + 1
				queue.PushBack(neighborID)
			}
		}
	}

	return distances
}
