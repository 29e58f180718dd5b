package qcolor

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"
)

// edgeListExpr is the grammar for "0-1, 1-2, 2-0".
type edgeListExpr struct {
	Edges []*edgeExpr `parser:"(@@ (\",\" @@)*)?"`
}

type edgeExpr struct {
	U int `parser:"@Int \"-\""`
	V int `parser:"@Int"`
}

var parseEdgeListExpr = participle.MustBuild[edgeListExpr]()

// ParseEdges reads a comma separated list of u-v pairs.
func ParseEdges(text string) ([]Edge, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	expr, err := parseEdgeListExpr.ParseString("", text)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidGraph, "parse edge list: %v", err)
	}

	edges := make([]Edge, 0, len(expr.Edges))
	for _, e := range expr.Edges {
		edges = append(edges, Edge{U: e.U, V: e.V})
	}
	return edges, nil
}

/*
ParseGraph reads an edge list and infers the vertex count from the largest
vertex index. An empty list cannot carry a vertex count, use
ParseGraphWithVertices for edgeless graphs.
*/
func ParseGraph(text string) (*Graph, error) {
	edges, err := ParseEdges(text)
	if err != nil {
		return nil, err
	}

	numVertices := 0
	for _, e := range edges {
		numVertices = max(numVertices, e.U+1, e.V+1)
	}
	return NewGraph(numVertices, edges)
}

func ParseGraphWithVertices(text string, numVertices int) (*Graph, error) {
	edges, err := ParseEdges(text)
	if err != nil {
		return nil, err
	}
	return NewGraph(numVertices, edges)
}
