// Package spatial maps geographic coordinates back to graph nodes and
// edges. The index is a quadtree of bounding regions built once over the
// graph's edge geometry; afterwards it is immutable and queries may run
// concurrently.
//
// Which edges feed the tree, which edges are considered per node, and how
// candidate nodes within a region are ordered are all injected strategies.
// The defaults index every edge and order candidates by node id; the
// level-aware configuration (NewLevelIndex) skips contraction shortcuts and
// ranks hierarchy hubs first.
package spatial

import (
	"errors"
	"sort"

	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/trailhead-maps/go-roadgraph/geom"
	"github.com/trailhead-maps/go-roadgraph/graph"
)

var ErrAlreadyBuilt = errors.New("spatial: index already built")

// Source is the graph adjacency collaborator the index reads from.
// *graph.Graph and *graph.LevelGraph both satisfy it.
type Source interface {
	NodePoint(node int) orb.Point
	AllEdges() graph.EdgeIterator
	NodeEdges(node int) graph.EdgeIterator
}

const (
	defaultBucketCapacity = 8
	defaultMaxDepth       = 16
)

// Option configures an Index before it is built.
type Option func(*Index)

// WithBucketCapacity sets the number of entries a leaf holds before it is
// subdivided.
func WithBucketCapacity(n int) Option {
	return func(x *Index) { x.capacity = n }
}

// WithMaxDepth caps subdivision; leaves at the maximum depth grow beyond
// the bucket capacity instead of splitting.
func WithMaxDepth(d int) Option {
	return func(x *Index) { x.maxDepth = d }
}

// WithLogger attaches a build-phase logger.
func WithLogger(log *zap.Logger) Option {
	return func(x *Index) { x.log = log }
}

// WithEdgeEnumerator replaces the edge enumeration used to populate the
// tree. The default enumerates every edge of the source, unfiltered.
func WithEdgeEnumerator(enum func() graph.EdgeIterator) Option {
	return func(x *Index) { x.allEdges = enum }
}

// WithNodeEdges replaces the per-node adjacency view used when resolving
// candidates to concrete edges. The default is the source's unfiltered
// adjacency.
func WithNodeEdges(fn func(node int) graph.EdgeIterator) Option {
	return func(x *Index) { x.nodeEdges = fn }
}

// WithCandidateOrder sets the ordering of candidate nodes within a region.
// Earlier candidates win distance ties. The default orders by node id.
func WithCandidateOrder(less func(a, b int) bool) Option {
	return func(x *Index) { x.less = less }
}

// entry is one indexed coordinate: a node identifier at the position it was
// inserted under, which is either the node's own coordinate or an interior
// geometry point of one of its edges.
type entry struct {
	node int
	p    orb.Point
}

type cell struct {
	bound    orb.Bound
	children []*cell // nil for leaves
	entries  []entry
}

// Index is the hierarchical bounding-region tree. Build is single-writer;
// once built the index is immutable and FindClosest is safe for concurrent
// callers.
type Index struct {
	src       Source
	allEdges  func() graph.EdgeIterator
	nodeEdges func(node int) graph.EdgeIterator
	less      func(a, b int) bool
	capacity  int
	maxDepth  int
	log       *zap.Logger

	root  *cell
	built bool
}

// NewIndex creates an unbuilt index over src. Call Build before querying.
func NewIndex(src Source, opts ...Option) *Index {
	x := &Index{
		src:       src,
		allEdges:  src.AllEdges,
		nodeEdges: src.NodeEdges,
		less:      func(a, b int) bool { return a < b },
		capacity:  defaultBucketCapacity,
		maxDepth:  defaultMaxDepth,
		log:       zap.NewNop(),
	}
	for _, o := range opts {
		o(x)
	}
	return x
}

// Build populates the tree from the configured edge enumeration: each
// enumerated edge contributes its two endpoints, and its interior geometry
// points attributed to the base node so that long ways remain discoverable
// from every region they cross. Buckets over capacity are subdivided, and
// finished buckets are ordered by the candidate comparator.
func (x *Index) Build() error {
	if x.built {
		return ErrAlreadyBuilt
	}

	entries, bound := x.collect()
	if len(entries) == 0 {
		x.built = true
		return nil
	}

	x.root = &cell{bound: bound}
	for _, e := range entries {
		x.insert(x.root, e, 0)
	}
	leaves, maxDepth := x.finish(x.root, 0)
	x.built = true

	x.log.Info("spatial index built",
		zap.Int("entries", len(entries)),
		zap.Int("leaves", leaves),
		zap.Int("depth", maxDepth),
	)
	return nil
}

func (x *Index) collect() ([]entry, orb.Bound) {
	var entries []entry
	var bound orb.Bound
	seen := map[entry]struct{}{}

	add := func(e entry) {
		if _, dup := seen[e]; dup {
			return
		}
		seen[e] = struct{}{}
		if len(entries) == 0 {
			bound = orb.Bound{Min: e.p, Max: e.p}
		} else {
			bound = bound.Extend(e.p)
		}
		entries = append(entries, e)
	}

	it := x.allEdges()
	for {
		e, ok := it.Next()
		if !ok {
			break
		}
		add(entry{node: e.Base, p: x.src.NodePoint(e.Base)})
		add(entry{node: e.Adj, p: x.src.NodePoint(e.Adj)})
		for _, p := range e.Geometry {
			add(entry{node: e.Base, p: p})
		}
	}
	return entries, bound
}

func (x *Index) insert(c *cell, e entry, depth int) {
	for c.children != nil {
		c = c.children[quadrant(c.bound, e.p)]
		depth++
	}
	c.entries = append(c.entries, e)
	if len(c.entries) > x.capacity && depth < x.maxDepth {
		x.split(c, depth)
	}
}

func (x *Index) split(c *cell, depth int) {
	quads := geom.QuadSplit(c.bound)
	c.children = make([]*cell, 4)
	for i := range c.children {
		c.children[i] = &cell{bound: quads[i]}
	}
	entries := c.entries
	c.entries = nil
	for _, e := range entries {
		x.insert(c, e, depth)
	}
}

// quadrant picks the child index for p, consistent with geom.QuadSplit's
// SW, SE, NW, NE ordering. Points on the center lines go east/north.
func quadrant(b orb.Bound, p orb.Point) int {
	c := b.Center()
	q := 0
	if p.Lon() >= c.Lon() {
		q |= 1
	}
	if p.Lat() >= c.Lat() {
		q |= 2
	}
	return q
}

// finish orders every bucket by the candidate comparator and gathers build
// statistics.
func (x *Index) finish(c *cell, depth int) (leaves, maxDepth int) {
	if c.children == nil {
		sort.SliceStable(c.entries, func(i, j int) bool {
			return x.less(c.entries[i].node, c.entries[j].node)
		})
		return 1, depth
	}
	maxDepth = depth
	for _, child := range c.children {
		l, d := x.finish(child, depth+1)
		leaves += l
		if d > maxDepth {
			maxDepth = d
		}
	}
	return leaves, maxDepth
}

// Candidates returns the ordered candidate nodes of the region containing
// p, deduplicated, without resolving them to edges. Mostly useful for
// diagnostics.
func (x *Index) Candidates(p orb.Point) []int {
	if x.root == nil {
		return nil
	}
	c := x.root
	for c.children != nil {
		c = c.children[quadrant(c.bound, p)]
	}
	var nodes []int
	seen := map[int]struct{}{}
	for _, e := range c.entries {
		if _, dup := seen[e.node]; dup {
			continue
		}
		seen[e.node] = struct{}{}
		nodes = append(nodes, e.node)
	}
	return nodes
}
