package qcolor

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/hashset"
	"github.com/pkg/errors"
)

// Edge is an undirected constraint between two vertices.
type Edge struct {
	U, V int
}

func (e Edge) String() string {
	return fmt.Sprintf("%d-%d", e.U, e.V)
}

// key is the orientation-free identity of the edge.
func (e Edge) key() [2]int {
	if e.U > e.V {
		return [2]int{e.V, e.U}
	}
	return [2]int{e.U, e.V}
}

/*
Graph is an immutable, validated undirected graph over vertices 0..V-1.
Edge order is kept as given, the oracle conjoins its checks in that order.
*/
type Graph struct {
	numVertices int
	edges       []Edge
}

/*
NewGraph validates an edge list. Vertices are 0-indexed, an edge may not be
a self-loop and may not repeat in either orientation. With at least one edge,
numVertices must equal the largest vertex index + 1; an edgeless graph only
needs a positive vertex count.
*/
func NewGraph(numVertices int, edges []Edge) (*Graph, error) {
	if numVertices < 1 {
		return nil, errors.Wrapf(ErrInconsistentVertexCount, "need at least one vertex, got %d", numVertices)
	}

	seen := hashset.New()
	maxVertex := -1

	for i, e := range edges {
		if e.U < 0 || e.V < 0 {
			return nil, errors.Wrapf(ErrInvalidGraph, "edge %d (%s) has a negative vertex", i, e)
		}
		if e.U == e.V {
			return nil, errors.Wrapf(ErrInvalidGraph, "edge %d (%s) is a self-loop", i, e)
		}
		if seen.Contains(e.key()) {
			return nil, errors.Wrapf(ErrInvalidGraph, "edge %d (%s) is a duplicate", i, e)
		}
		seen.Add(e.key())
		maxVertex = max(maxVertex, e.U, e.V)
	}

	if len(edges) > 0 && maxVertex+1 != numVertices {
		return nil, errors.Wrapf(
			ErrInconsistentVertexCount,
			"edges span %d vertices, numVertices is %d", maxVertex+1, numVertices,
		)
	}

	return &Graph{
		numVertices: numVertices,
		edges:       append([]Edge(nil), edges...),
	}, nil
}

func (g *Graph) NumVertices() int {
	return g.numVertices
}

// Edges returns a copy of the edge list.
func (g *Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

func (g *Graph) NumEdges() int {
	return len(g.edges)
}

// String renders the edge list in the form ParseGraph accepts.
func (g *Graph) String() string {
	parts := make([]string, len(g.edges))
	for i, e := range g.edges {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
