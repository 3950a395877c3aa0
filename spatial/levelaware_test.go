package spatial

import (
	"fmt"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailhead-maps/go-roadgraph/graph"
)

// contractedChain builds a 4 node chain a-b-c-d with real edges, then adds
// the shortcuts a contraction of b and c would introduce: a-c (bypassing b)
// and a-d (bypassing b and c). Levels: endpoints high, interior low.
func contractedChain(t *testing.T, withShortcuts bool) *graph.LevelGraph {
	t.Helper()
	g := graph.NewLevelGraph(1)
	a := g.AddNode(orb.Point{13.00, 52.0})
	b := g.AddNode(orb.Point{13.01, 52.0})
	c := g.AddNode(orb.Point{13.02, 52.0})
	d := g.AddNode(orb.Point{13.03, 52.0})
	g.AddEdge(a, b, 700, nil)
	g.AddEdge(b, c, 700, nil)
	g.AddEdge(c, d, 700, nil)
	if withShortcuts {
		g.AddShortcut(a, c, 1400)
		g.AddShortcut(a, d, 2100)
	}
	require.NoError(t, g.SetLevel(a, 3))
	require.NoError(t, g.SetLevel(b, 1))
	require.NoError(t, g.SetLevel(c, 2))
	require.NoError(t, g.SetLevel(d, 4))
	return g
}

func TestLevelIndexExcludesShortcuts(t *testing.T) {
	withShortcuts := contractedChain(t, true)
	withoutShortcuts := contractedChain(t, false)

	a := NewLevelIndex(withShortcuts, WithBucketCapacity(2))
	require.NoError(t, a.Build())
	b := NewLevelIndex(withoutShortcuts, WithBucketCapacity(2))
	require.NoError(t, b.Build())

	// Identical candidate sets and identical nearest answers everywhere:
	// the shortcuts contributed nothing to the index.
	for i := 0; i <= 30; i++ {
		p := orb.Point{13.0 + float64(i)*0.001, 52.0005}
		t.Run(fmt.Sprintf("lon_offset_%d", i), func(t *testing.T) {
			assert.Equal(t, b.Candidates(p), a.Candidates(p))

			ma, oka := a.FindClosest(p, nil)
			mb, okb := b.FindClosest(p, nil)
			require.Equal(t, okb, oka)
			assert.Equal(t, mb, ma)
		})
	}
}

func TestLevelIndexNeverMatchesShortcut(t *testing.T) {
	g := contractedChain(t, true)
	x := NewLevelIndex(g)
	require.NoError(t, x.Build())

	for i := 0; i <= 30; i++ {
		p := orb.Point{13.0 + float64(i)*0.001, 51.999}
		m, ok := x.FindClosest(p, nil)
		require.True(t, ok)
		assert.False(t, g.Edge(m.Edge).Shortcut)
	}
}

func TestLevelIndexCandidateOrder(t *testing.T) {
	g := graph.NewLevelGraph(1)
	// Two nodes in the same region with levels 5 and 2.
	low := g.AddNode(orb.Point{13.000, 52.0})
	high := g.AddNode(orb.Point{13.001, 52.0})
	other := g.AddNode(orb.Point{13.002, 52.0})
	g.AddEdge(low, high, 70, nil)
	g.AddEdge(high, other, 70, nil)
	require.NoError(t, g.SetLevel(low, 2))
	require.NoError(t, g.SetLevel(high, 5))
	require.NoError(t, g.SetLevel(other, 1))

	x := NewLevelIndex(g, WithBucketCapacity(16))
	require.NoError(t, x.Build())

	nodes := x.Candidates(orb.Point{13.001, 52.0})
	require.Len(t, nodes, 3)
	assert.Equal(t, []int{high, low, other}, nodes, "higher level nodes rank first")
}

func TestLevelIndexShortcutOnlyNodeStillReachable(t *testing.T) {
	// A node whose adjacency holds a shortcut as its first edge: the
	// per-node filter must skip it and resolve the real edge instead.
	g := graph.NewLevelGraph(1)
	a := g.AddNode(orb.Point{13.00, 52.0})
	b := g.AddNode(orb.Point{13.01, 52.0})
	c := g.AddNode(orb.Point{13.02, 52.0})
	g.AddShortcut(a, c, 1400)
	real := g.AddEdge(a, b, 700, nil)
	g.AddEdge(b, c, 700, nil)

	x := NewLevelIndex(g)
	require.NoError(t, x.Build())

	m, ok := x.FindClosest(orb.Point{13.0, 52.0001}, nil)
	require.True(t, ok)
	assert.Equal(t, real, m.Edge)
}
