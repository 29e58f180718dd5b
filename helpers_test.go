package qcolor

import (
	"context"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
)

const testTimeout = 30 * time.Second

// tolerance for floating point normalization checks.
const tolerance = 1e-9

func init() {
	SetLogger(log.NewWithOptions(io.Discard, log.Options{}))
}

// cubeEdges is the 3-cube: a square 0-3 over a square 4-7 with rungs.
var cubeEdges = []Edge{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
}

var triangleEdges = []Edge{{0, 1}, {1, 2}, {2, 0}}

func mustGraph(numVertices int, edges []Edge) *Graph {
	g, err := NewGraph(numVertices, edges)
	if err != nil {
		panic(err)
	}
	return g
}

func mustOracle(g *Graph, bitsPerColor int, pool *Pool) *ColoringOracle {
	enc, err := NewEncoding(g.NumVertices(), bitsPerColor)
	if err != nil {
		panic(err)
	}
	o, err := NewColoringOracle(g, enc, pool)
	if err != nil {
		panic(err)
	}
	return o
}

func testContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), testTimeout)
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}
