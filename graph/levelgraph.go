package graph

import (
	"fmt"

	"github.com/paulmach/orb"
)

// LevelGraph is a Graph whose nodes carry the hierarchy level assigned by
// contraction preprocessing. Higher levels mark nodes retained longer
// during contraction; they act as regional hubs. All nodes start at
// level 0.
//
// The contraction algorithm itself is an external collaborator; this type
// only stores its results (levels and the shortcut edges it adds through
// AddShortcut).
type LevelGraph struct {
	*Graph
	levels []int
}

// NewLevelGraph creates an empty level graph with the given flag record
// width.
func NewLevelGraph(wordsPerRecord int) *LevelGraph {
	return &LevelGraph{Graph: New(wordsPerRecord)}
}

// AddNode appends a node at p at level 0 and returns its identifier.
func (g *LevelGraph) AddNode(p orb.Point) int {
	g.levels = append(g.levels, 0)
	return g.Graph.AddNode(p)
}

// SetLevel assigns the hierarchy level of node n. Levels are non-negative.
func (g *LevelGraph) SetLevel(n, level int) error {
	if level < 0 {
		return fmt.Errorf("graph: negative hierarchy level %d for node %d", level, n)
	}
	g.levels[n] = level
	return nil
}

// Level returns the hierarchy level of node n.
func (g *LevelGraph) Level(n int) int { return g.levels[n] }
