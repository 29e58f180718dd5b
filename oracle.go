package qcolor

import (
	"context"
	"math/bits"

	"github.com/pkg/errors"
	"github.com/theapemachine/errnie"
)

/*
ColoringOracle marks the basis states that encode a valid coloring: the AND
of every edge's inequality check, taken in edge-list order. An edgeless graph
marks every state.
*/
type ColoringOracle struct {
	enc      Encoding
	edges    []Edge
	checkers []EdgeChecker
	pool     *Pool
}

func NewColoringOracle(g *Graph, enc Encoding, pool *Pool) (*ColoringOracle, error) {
	if g.NumVertices() != enc.NumVertices() {
		return nil, errors.Wrapf(
			ErrInconsistentVertexCount,
			"graph has %d vertices, encoding %d", g.NumVertices(), enc.NumVertices(),
		)
	}

	edges := g.Edges()
	checkers := make([]EdgeChecker, len(edges))
	for i, e := range edges {
		checkers[i] = NewEdgeChecker(enc, e)
	}

	errnie.Info("NewColoringOracle - edges %d, qubits %d", len(edges), enc.Qubits())

	return &ColoringOracle{
		enc:      enc,
		edges:    edges,
		checkers: checkers,
		pool:     pool,
	}, nil
}

func (o *ColoringOracle) Encoding() Encoding {
	return o.enc
}

func (o *ColoringOracle) Edges() []Edge {
	return append([]Edge(nil), o.edges...)
}

// Valid reports whether index satisfies every edge.
func (o *ColoringOracle) Valid(index uint64) bool {
	for _, c := range o.checkers {
		if !c.Inequal(index) {
			return false
		}
	}
	return true
}

// MarkValid flips the sign of every valid amplitude. Magnitudes never change.
func (o *ColoringOracle) MarkValid(ctx context.Context, sv *StateVector) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if uint64(sv.Len()) != o.enc.Size() {
		return errors.Wrapf(ErrInvalidWidth, "state has %d amplitudes, oracle expects %d", sv.Len(), o.enc.Size())
	}

	o.pool.Fan("oracle.mark", sv.Len(), func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			if o.Valid(uint64(i)) {
				sv.Amplitudes[i] = -sv.Amplitudes[i]
			}
		}
	})
	return nil
}

// CountMarked enumerates the whole index space and returns the exact size of
// the marking set.
func (o *ColoringOracle) CountMarked(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if o.enc.Qubits() >= bits.UintSize-1 {
		return 0, errors.Wrapf(ErrResourceExceeded, "cannot enumerate %d qubits", o.enc.Qubits())
	}

	n := int(o.enc.Size())
	partials := make([]uint64, o.pool.Chunks(n))

	o.pool.Fan("oracle.count", n, func(chunk, lo, hi int) {
		var count uint64
		for i := lo; i < hi; i++ {
			if o.Valid(uint64(i)) {
				count++
			}
		}
		partials[chunk] = count
	})

	var total uint64
	for _, c := range partials {
		total += c
	}
	return total, nil
}
