package spatial

import (
	"math"
	"sort"

	"github.com/paulmach/orb"

	"github.com/trailhead-maps/go-roadgraph/geom"
	"github.com/trailhead-maps/go-roadgraph/graph"
)

// Match is the result of a nearest query: the candidate node that resolved
// it, the matched edge, the snapped point on that edge's geometry and the
// distance from the query point in meters.
type Match struct {
	Node     int
	Edge     int
	Point    orb.Point
	Distance float64
}

// FindClosest returns the nearest match to p among the indexed edges,
// measured over full edge geometry. filter, when non-nil, restricts which
// edges may match; candidates whose every edge is rejected are skipped and
// the search widens to neighboring regions. An empty region of the graph is
// a normal outcome: the second return is false and no error exists.
func (x *Index) FindClosest(p orb.Point, filter graph.EdgeFilter) (Match, bool) {
	if !x.built || x.root == nil {
		return Match{}, false
	}
	best := Match{Edge: -1, Distance: math.Inf(1)}
	seen := map[int]struct{}{}
	x.search(x.root, p, filter, seen, &best)
	if best.Edge < 0 {
		return Match{}, false
	}
	return best, true
}

// search walks cells in best-first order, pruning any region that already
// lies farther away than the best match.
func (x *Index) search(c *cell, p orb.Point, filter graph.EdgeFilter, seen map[int]struct{}, best *Match) {
	if geom.BoundDistance(p, c.bound) > best.Distance {
		return
	}
	if c.children == nil {
		for _, e := range c.entries {
			x.checkCandidate(e.node, p, filter, seen, best)
		}
		return
	}
	order := []int{0, 1, 2, 3}
	sort.Slice(order, func(i, j int) bool {
		return geom.BoundDistance(p, c.children[order[i]].bound) <
			geom.BoundDistance(p, c.children[order[j]].bound)
	})
	for _, i := range order {
		x.search(c.children[i], p, filter, seen, best)
	}
}

// checkCandidate resolves a candidate node to its incident edges and keeps
// the strictly closest snap. Strict improvement means earlier candidates
// win ties, preserving the configured candidate order.
func (x *Index) checkCandidate(node int, p orb.Point, filter graph.EdgeFilter, seen map[int]struct{}, best *Match) {
	if _, done := seen[node]; done {
		return
	}
	seen[node] = struct{}{}

	it := x.nodeEdges(node)
	for {
		e, ok := it.Next()
		if !ok {
			return
		}
		if filter != nil && !filter(e) {
			continue
		}
		snapped, d := geom.SnapToLine(p, x.fullGeometry(e))
		if d < best.Distance {
			*best = Match{Node: node, Edge: e.ID, Point: snapped, Distance: d}
		}
	}
}

func (x *Index) fullGeometry(e graph.Edge) orb.LineString {
	line := make(orb.LineString, 0, len(e.Geometry)+2)
	line = append(line, x.src.NodePoint(e.Base))
	line = append(line, e.Geometry...)
	line = append(line, x.src.NodePoint(e.Adj))
	return line
}
