package algorithms

import (
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/cluso-anchornav/pkg/waypoint"
)

func randomGraph(n int, raw []int) *waypoint.Graph {
	anchors := make([]waypoint.AnchorRecord, n)
	for i := range anchors {
		anchors[i] = waypoint.AnchorRecord{ID: waypoint.ID(strconv.Itoa(i))}
	}
	var pairs []waypoint.PairRecord
	for i := 0; i+1 < len(raw); i += 2 {
		pairs = append(pairs, waypoint.PairRecord{
			ID1: waypoint.ID(strconv.Itoa(raw[i] % n)),
			ID2: waypoint.ID(strconv.Itoa(raw[i+1] % n)),
		})
	}
	g, _ := waypoint.Build(anchors, pairs)
	return g
}

// TestShortestPathProperties checks BFS routes against independent hop counts
func TestShortestPathProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("route length matches hop distance", prop.ForAll(
		func(n int, raw []int, start, goal int) bool {
			g := randomGraph(n, raw)
			s := waypoint.ID(strconv.Itoa(start % n))
			e := waypoint.ID(strconv.Itoa(goal % n))

			route, ok := ShortestPath(g, s, e)
			dist, reachable := HopDistances(g, s)[e]
			if ok != reachable {
				return false
			}
			return !ok || route.Hops() == dist
		},
		gen.IntRange(1, 15),
		gen.SliceOf(gen.IntRange(0, 1000)),
		gen.IntRange(0, 1000),
		gen.IntRange(0, 1000),
	))

	properties.Property("consecutive route waypoints are adjacent", prop.ForAll(
		func(n int, raw []int, start, goal int) bool {
			g := randomGraph(n, raw)
			route, ok := ShortestPath(g,
				waypoint.ID(strconv.Itoa(start%n)),
				waypoint.ID(strconv.Itoa(goal%n)))
			if !ok {
				return true
			}
			for i := 1; i < len(route); i++ {
				w, _ := g.Waypoint(route[i-1])
				if !w.IsAdjacent(route[i]) {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 15),
		gen.SliceOf(gen.IntRange(0, 1000)),
		gen.IntRange(0, 1000),
		gen.IntRange(0, 1000),
	))

	properties.Property("reverse route has the same length", prop.ForAll(
		func(n int, raw []int, start, goal int) bool {
			g := randomGraph(n, raw)
			s := waypoint.ID(strconv.Itoa(start % n))
			e := waypoint.ID(strconv.Itoa(goal % n))

			there, ok1 := ShortestPath(g, s, e)
			back, ok2 := ShortestPath(g, e, s)
			return ok1 == ok2 && there.Len() == back.Len()
		},
		gen.IntRange(1, 15),
		gen.SliceOf(gen.IntRange(0, 1000)),
		gen.IntRange(0, 1000),
		gen.IntRange(0, 1000),
	))

	properties.TestingRun(t)
}
