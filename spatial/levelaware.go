package spatial

import (
	"github.com/trailhead-maps/go-roadgraph/graph"
)

// NotShortcut accepts every real edge and rejects contraction shortcuts.
var NotShortcut graph.EdgeFilter = func(e graph.Edge) bool { return !e.Shortcut }

// NewLevelIndex configures an index for a graph that has been through
// hierarchy contraction:
//
//   - the edge enumeration skips every shortcut, so the tree never contains
//     geometry derived from a synthetic edge
//   - the per-node adjacency view also skips shortcuts, which can appear in
//     a node's adjacency independently of the global enumeration
//   - candidate nodes within a region are ordered by hierarchy level,
//     highest first: high-level nodes survive contraction longest and act
//     as regional hubs, so they are the most representative answer for a
//     region and lower-level neighbors count as covered by them
//
// Additional opts are applied after the level-aware configuration and may
// override it.
func NewLevelIndex(lg *graph.LevelGraph, opts ...Option) *Index {
	configured := append([]Option{
		WithEdgeEnumerator(func() graph.EdgeIterator {
			return graph.FilterEdges(lg.AllEdges(), NotShortcut)
		}),
		WithNodeEdges(func(node int) graph.EdgeIterator {
			return graph.FilterEdges(lg.NodeEdges(node), NotShortcut)
		}),
		WithCandidateOrder(func(a, b int) bool {
			return lg.Level(a) > lg.Level(b)
		}),
	}, opts...)
	return NewIndex(lg, configured...)
}
