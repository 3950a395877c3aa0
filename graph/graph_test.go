package graph

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailhead-maps/go-roadgraph/encval"
)

func collect(it EdgeIterator) []Edge {
	var edges []Edge
	for {
		e, ok := it.Next()
		if !ok {
			return edges
		}
		edges = append(edges, e)
	}
}

func triangle(t *testing.T) *Graph {
	t.Helper()
	g := New(1)
	a := g.AddNode(orb.Point{13.0, 52.0})
	b := g.AddNode(orb.Point{13.1, 52.0})
	c := g.AddNode(orb.Point{13.05, 52.05})
	g.AddEdge(a, b, 100, nil)
	g.AddEdge(b, c, 120, nil)
	g.AddEdge(c, a, 130, nil)
	return g
}

func TestGraphEnumeration(t *testing.T) {
	g := triangle(t)

	all := collect(g.AllEdges())
	require.Len(t, all, 3)
	for i, e := range all {
		assert.Equal(t, i, e.ID, "enumeration follows id order")
	}

	// Node 1 touches the first two edges.
	incident := collect(g.NodeEdges(1))
	require.Len(t, incident, 2)
	assert.Equal(t, 0, incident[0].ID)
	assert.Equal(t, 1, incident[1].ID)
}

func TestFilterEdges(t *testing.T) {
	g := triangle(t)
	g.AddShortcut(0, 2, 230)

	real := collect(FilterEdges(g.AllEdges(), func(e Edge) bool { return !e.Shortcut }))
	assert.Len(t, real, 3)

	shortcuts := collect(FilterEdges(g.AllEdges(), func(e Edge) bool { return e.Shortcut }))
	require.Len(t, shortcuts, 1)
	assert.Equal(t, 3, shortcuts[0].ID)
	assert.Empty(t, shortcuts[0].Geometry, "shortcuts carry no geometry")
}

func TestGraphEdgeFlags(t *testing.T) {
	speed, err := encval.NewIntValue("speed", 6, 0, false)
	require.NoError(t, err)
	reg, err := encval.NewRegistry(nil, speed)
	require.NoError(t, err)

	g := New(reg.WordsPerRecord())
	a := g.AddNode(orb.Point{13.0, 52.0})
	b := g.AddNode(orb.Point{13.1, 52.0})
	e1 := g.AddEdge(a, b, 100, nil)
	e2 := g.AddEdge(b, a, 100, nil)

	require.NoError(t, speed.Encode(false, g.Flags(e1), 50))
	require.NoError(t, speed.Encode(false, g.Flags(e2), 30))

	got, err := speed.Decode(false, g.Flags(e1))
	require.NoError(t, err)
	assert.Equal(t, 50, got)
	got, err = speed.Decode(false, g.Flags(e2))
	require.NoError(t, err)
	assert.Equal(t, 30, got)
}

func TestFullGeometry(t *testing.T) {
	g := New(1)
	a := g.AddNode(orb.Point{13.0, 52.0})
	b := g.AddNode(orb.Point{13.2, 52.0})
	pillar := orb.Point{13.1, 52.01}
	e := g.AddEdge(a, b, 200, orb.LineString{pillar})

	line := g.FullGeometry(g.Edge(e))
	require.Len(t, line, 3)
	assert.Equal(t, g.NodePoint(a), line[0])
	assert.Equal(t, pillar, line[1])
	assert.Equal(t, g.NodePoint(b), line[2])
}

func TestLevelGraph(t *testing.T) {
	g := NewLevelGraph(1)
	a := g.AddNode(orb.Point{13.0, 52.0})
	b := g.AddNode(orb.Point{13.1, 52.0})

	assert.Equal(t, 0, g.Level(a), "nodes start at level 0")
	require.NoError(t, g.SetLevel(b, 5))
	assert.Equal(t, 5, g.Level(b))
	assert.Error(t, g.SetLevel(a, -1))
}

func TestSelfLoopListedOnce(t *testing.T) {
	g := New(1)
	a := g.AddNode(orb.Point{13.0, 52.0})
	g.AddEdge(a, a, 50, nil)

	assert.Len(t, collect(g.NodeEdges(a)), 1)
}
