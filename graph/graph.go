// Package graph holds the in-memory road graph the storage and indexing
// core operates on: nodes with coordinates, edges with geometry, distance
// and flag records, plus the level graph produced by hierarchy contraction.
//
// The graph follows the core's two-phase discipline: AddNode/AddEdge and
// level assignment are single-writer build operations; everything else is a
// read and safe for concurrent use once building is done.
package graph

import (
	"github.com/paulmach/orb"

	"github.com/trailhead-maps/go-roadgraph/encval"
	"github.com/trailhead-maps/go-roadgraph/storage"
)

// Edge is one directed-pair edge record as seen by iterators. Geometry
// holds only the interior (pillar) points; the endpoints live on the nodes.
// Shortcut marks synthetic edges introduced by hierarchy contraction, which
// carry no real-world geometry.
type Edge struct {
	ID       int
	Base     int
	Adj      int
	Distance float64
	Geometry orb.LineString
	Shortcut bool
}

// EdgeFilter decides whether an iterator yields an edge.
type EdgeFilter func(Edge) bool

// EdgeIterator enumerates edges one at a time. Iterators are single-use and
// not synchronized; each goroutine obtains its own.
type EdgeIterator interface {
	Next() (Edge, bool)
}

// FilterEdges wraps it so that only edges accepted by keep are yielded.
func FilterEdges(it EdgeIterator, keep EdgeFilter) EdgeIterator {
	return &filteredIterator{it: it, keep: keep}
}

type filteredIterator struct {
	it   EdgeIterator
	keep EdgeFilter
}

func (f *filteredIterator) Next() (Edge, bool) {
	for {
		e, ok := f.it.Next()
		if !ok {
			return Edge{}, false
		}
		if f.keep(e) {
			return e, true
		}
	}
}

// Graph is the in-memory graph storage. Every edge owns one flag record in
// the shared FlagStore; encoded values read and write those records through
// the windows handed out by Flags.
type Graph struct {
	nodes []orb.Point
	edges []Edge
	adj   [][]int
	flags *storage.FlagStore
}

// New creates an empty graph whose edge flag records are wordsPerRecord
// words wide, as reported by the encoded value registry.
func New(wordsPerRecord int) *Graph {
	return &Graph{flags: storage.NewFlagStore(wordsPerRecord)}
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges, shortcuts included.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// AddNode appends a node at p and returns its identifier.
func (g *Graph) AddNode(p orb.Point) int {
	g.nodes = append(g.nodes, p)
	g.adj = append(g.adj, nil)
	return len(g.nodes) - 1
}

// NodePoint returns the coordinate of node n.
func (g *Graph) NodePoint(n int) orb.Point { return g.nodes[n] }

// AddEdge appends a real edge between base and adj with the given interior
// geometry, allocates its zero-filled flag record and returns the edge id.
func (g *Graph) AddEdge(base, adj int, distance float64, geometry orb.LineString) int {
	return g.addEdge(Edge{Base: base, Adj: adj, Distance: distance, Geometry: geometry})
}

// AddShortcut appends a synthetic shortcut edge. Shortcuts carry no
// geometry and are excluded from spatial indexing by the level-aware index.
func (g *Graph) AddShortcut(base, adj int, distance float64) int {
	return g.addEdge(Edge{Base: base, Adj: adj, Distance: distance, Shortcut: true})
}

func (g *Graph) addEdge(e Edge) int {
	e.ID = len(g.edges)
	g.edges = append(g.edges, e)
	g.adj[e.Base] = append(g.adj[e.Base], e.ID)
	if e.Adj != e.Base {
		g.adj[e.Adj] = append(g.adj[e.Adj], e.ID)
	}
	g.flags.AddRecord()
	return e.ID
}

// Edge returns edge e by id.
func (g *Graph) Edge(e int) Edge { return g.edges[e] }

// Flags returns the flag record of edge e. The window aliases shared
// storage and must be re-fetched after further AddEdge calls.
func (g *Graph) Flags(e int) encval.FlagsRef {
	return g.flags.Record(e)
}

// FlagStore exposes the backing record store for persistence.
func (g *Graph) FlagStore() *storage.FlagStore { return g.flags }

// SetFlagStore replaces the backing record store, used when flag records
// are loaded from durable storage. The store must hold one record per edge.
func (g *Graph) SetFlagStore(flags *storage.FlagStore) {
	g.flags = flags
}

// FullGeometry returns the complete coordinate sequence of edge e: base
// node, interior points, adjacent node. Nearest-edge queries measure
// against this, not just the endpoints.
func (g *Graph) FullGeometry(e Edge) orb.LineString {
	line := make(orb.LineString, 0, len(e.Geometry)+2)
	line = append(line, g.nodes[e.Base])
	line = append(line, e.Geometry...)
	line = append(line, g.nodes[e.Adj])
	return line
}

// AllEdges enumerates every edge, unfiltered, in id order.
func (g *Graph) AllEdges() EdgeIterator {
	return &allEdgesIterator{g: g}
}

type allEdgesIterator struct {
	g    *Graph
	next int
}

func (it *allEdgesIterator) Next() (Edge, bool) {
	if it.next >= len(it.g.edges) {
		return Edge{}, false
	}
	e := it.g.edges[it.next]
	it.next++
	return e, true
}

// NodeEdges enumerates the edges incident to node n, unfiltered.
func (g *Graph) NodeEdges(n int) EdgeIterator {
	return &nodeEdgesIterator{g: g, ids: g.adj[n]}
}

type nodeEdgesIterator struct {
	g    *Graph
	ids  []int
	next int
}

func (it *nodeEdgesIterator) Next() (Edge, bool) {
	if it.next >= len(it.ids) {
		return Edge{}, false
	}
	e := it.g.edges[it.ids[it.next]]
	it.next++
	return e, true
}
