package qcolor

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/theapemachine/errnie"
)

// maxIndexBits keeps every basis index and its state size inside a uint64.
const maxIndexBits = 63

// Coloring assigns one color per vertex, indexed by vertex.
type Coloring []int

func (c Coloring) String() string {
	return fmt.Sprint([]int(c))
}

/*
Encoding maps a full color assignment onto a basis state index. Vertex i
owns bits [i*bitsPerColor, (i+1)*bitsPerColor) of the index, so the
assignment of V vertices spans V*bitsPerColor qubits.
*/
type Encoding struct {
	numVertices  int
	bitsPerColor int
	mask         uint64
}

func NewEncoding(numVertices, bitsPerColor int) (Encoding, error) {
	if numVertices < 1 {
		return Encoding{}, errors.Wrapf(ErrInconsistentVertexCount, "need at least one vertex, got %d", numVertices)
	}
	if bitsPerColor < 1 || bitsPerColor >= maxIndexBits {
		return Encoding{}, errors.Wrapf(ErrInvalidWidth, "bitsPerColor %d out of range", bitsPerColor)
	}
	if numVertices > maxIndexBits/bitsPerColor {
		return Encoding{}, errors.Wrapf(
			ErrInvalidWidth,
			"%d vertices of %d bits exceed the %d-bit index", numVertices, bitsPerColor, maxIndexBits,
		)
	}

	errnie.Info(
		"NewEncoding - vertices %d, bitsPerColor %d, qubits %d",
		numVertices,
		bitsPerColor,
		numVertices*bitsPerColor,
	)

	return Encoding{
		numVertices:  numVertices,
		bitsPerColor: bitsPerColor,
		mask:         1<<uint(bitsPerColor) - 1,
	}, nil
}

func (e Encoding) NumVertices() int {
	return e.numVertices
}

func (e Encoding) BitsPerColor() int {
	return e.bitsPerColor
}

// Qubits is the total register width.
func (e Encoding) Qubits() int {
	return e.numVertices * e.bitsPerColor
}

// Size is the number of basis states, 2^Qubits.
func (e Encoding) Size() uint64 {
	return 1 << uint(e.Qubits())
}

// Colors is the number of distinct colors one register can hold.
func (e Encoding) Colors() int {
	return 1 << uint(e.bitsPerColor)
}

func (e Encoding) shift(vertex int) uint {
	return uint(vertex * e.bitsPerColor)
}

// Color slices the register of one vertex out of a basis index.
func (e Encoding) Color(index uint64, vertex int) int {
	return int((index >> e.shift(vertex)) & e.mask)
}

func (e Encoding) Encode(colors Coloring) (uint64, error) {
	if len(colors) != e.numVertices {
		return 0, errors.Wrapf(
			ErrInconsistentVertexCount, "got %d colors for %d vertices", len(colors), e.numVertices,
		)
	}

	var index uint64
	for v, c := range colors {
		if c < 0 || c >= e.Colors() {
			return 0, errors.Wrapf(ErrInvalidWidth, "vertex %d color %d outside [0, %d)", v, c, e.Colors())
		}
		index |= uint64(c) << e.shift(v)
	}
	return index, nil
}

func (e Encoding) Decode(index uint64) (Coloring, error) {
	if index >= e.Size() {
		return nil, errors.Wrapf(ErrInvalidWidth, "index %d outside [0, %d)", index, e.Size())
	}

	colors := make(Coloring, e.numVertices)
	for v := range colors {
		colors[v] = e.Color(index, v)
	}
	return colors, nil
}
